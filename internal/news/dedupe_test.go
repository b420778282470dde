package news

import (
	"testing"
	"time"

	"EquityPulse/internal/domain/models"
)

func dedupeFixtures() []models.NewsRecord {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	return []models.NewsRecord{
		{Ticker: "UBER", Title: "Drivers strike over wages", Source: "gdelt",
			URL: "https://example.com/a", PublishedAt: day.Add(8 * time.Hour)},
		{Ticker: "UBER", Title: "Drivers strike over wages", Source: "reuters",
			URL: "https://www.reuters.com/a", PublishedAt: day.Add(10 * time.Hour)},
		{Ticker: "UBER", Title: "Q2 earnings beat estimates", Source: "finnhub",
			URL: "https://example.com/b", PublishedAt: day.Add(12 * time.Hour)},
	}
}

func TestDedupeFirstSeen(t *testing.T) {
	d := NewDeduplicator(FirstSeen, nil, nil)
	out := d.Dedupe(dedupeFixtures())

	if len(out) != 2 {
		t.Fatalf("got %d records", len(out))
	}
	if out[0].Source != "gdelt" {
		t.Fatalf("first_seen must keep first source, got %s", out[0].Source)
	}
	if out[1].Title != "Q2 earnings beat estimates" {
		t.Fatalf("unexpected second record %q", out[1].Title)
	}
}

func TestDedupeHighestTrust(t *testing.T) {
	table := NewTrustTable(DefaultTrustWeights(), 0)
	wl := NewWhitelist([]string{"reuters.com"})
	d := NewDeduplicator(HighestTrust, table, wl)

	out := d.Dedupe(dedupeFixtures())
	if len(out) != 2 {
		t.Fatalf("got %d records", len(out))
	}
	if out[0].Source != "reuters" {
		t.Fatalf("highest_trust must keep reuters, got %s", out[0].Source)
	}
}

func TestDedupeHighestTrustTieKeepsNewest(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []models.NewsRecord{
		{Ticker: "UBER", Title: "Regulators open probe", Source: "finnhub",
			PublishedAt: day.Add(2 * time.Hour)},
		{Ticker: "UBER", Title: "Regulators open probe", Source: "fmp",
			PublishedAt: day.Add(6 * time.Hour)},
	}

	table := NewTrustTable(DefaultTrustWeights(), 0)
	d := NewDeduplicator(HighestTrust, table, nil)

	out := d.Dedupe(records)
	if len(out) != 1 {
		t.Fatalf("got %d records", len(out))
	}
	if out[0].Source != "fmp" {
		t.Fatalf("tie must keep most recent, got %s", out[0].Source)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	d := NewDeduplicator(FirstSeen, nil, nil)
	once := d.Dedupe(dedupeFixtures())
	twice := d.Dedupe(once)

	if len(once) != len(twice) {
		t.Fatalf("dedupe not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Title != twice[i].Title || once[i].Source != twice[i].Source {
			t.Fatalf("record %d changed on second pass", i)
		}
	}
}
