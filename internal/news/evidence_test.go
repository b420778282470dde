package news

import (
	"testing"
	"time"

	"EquityPulse/internal/domain/models"
)

func TestEvidenceTableOrderAndCap(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	a := NewAggregator(WindowConfig{Now: func() time.Time { return now }})

	records := []models.NewsRecord{
		{Ticker: "UBER", Title: "mild", ImpactScore: -2, RiskTag: models.TagRegulatory,
			PublishedAt: now.AddDate(0, 0, -1)},
		{Ticker: "UBER", Title: "severe old", ImpactScore: -3, RiskTag: models.TagLabor,
			PublishedAt: now.AddDate(0, 0, -9)},
		{Ticker: "UBER", Title: "severe new", ImpactScore: -3, RiskTag: models.TagLabor,
			PublishedAt: now.AddDate(0, 0, -3)},
		{Ticker: "UBER", Title: "positive", ImpactScore: 2,
			PublishedAt: now.AddDate(0, 0, -2)},
		{Ticker: "UBER", Title: "stale", ImpactScore: -3,
			PublishedAt: now.AddDate(0, 0, -45)},
		{Ticker: "LYFT", Title: "other ticker", ImpactScore: -3,
			PublishedAt: now.AddDate(0, 0, -1)},
	}

	rows := a.EvidenceTable(records, "uber", 30, 0)
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Title != "severe new" || rows[1].Title != "severe old" {
		t.Fatalf("worst-first order broken: %q, %q", rows[0].Title, rows[1].Title)
	}
	if rows[2].Title != "mild" || rows[3].Title != "positive" {
		t.Fatalf("tail order: %q, %q", rows[2].Title, rows[3].Title)
	}
	if rows[3].RiskTag != models.TagOther {
		t.Fatalf("empty tag must surface as OTHER, got %s", rows[3].RiskTag)
	}

	capped := a.EvidenceTable(records, "UBER", 30, 2)
	if len(capped) != 2 || capped[1].Title != "severe old" {
		t.Fatalf("cap: %d rows", len(capped))
	}
}
