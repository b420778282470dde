package news

import (
	"testing"
	"time"

	"EquityPulse/internal/domain/models"
)

var windowNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func newTestAggregator() *Aggregator {
	return NewAggregator(WindowConfig{Now: func() time.Time { return windowNow }})
}

func TestSummarizeWindows(t *testing.T) {
	a := newTestAggregator()

	records := []models.NewsRecord{
		// 2 days old: inside both windows.
		{Ticker: "UBER", RiskTag: models.TagLabor, ImpactScore: -3,
			PublishedAt: windowNow.AddDate(0, 0, -2)},
		// 10 days old: inside 30d only.
		{Ticker: "UBER", RiskTag: models.TagRegulatory, ImpactScore: -2,
			PublishedAt: windowNow.AddDate(0, 0, -10)},
		// 40 days old: outside both.
		{Ticker: "UBER", RiskTag: models.TagLabor, ImpactScore: -3,
			PublishedAt: windowNow.AddDate(0, 0, -40)},
		// Positive records never count against the ticker.
		{Ticker: "UBER", RiskTag: models.TagFinancial, ImpactScore: 2,
			PublishedAt: windowNow.AddDate(0, 0, -1)},
		// Other tickers are ignored.
		{Ticker: "LYFT", RiskTag: models.TagLabor, ImpactScore: -3,
			PublishedAt: windowNow.AddDate(0, 0, -1)},
	}

	sum := a.Summarize(records, "uber")
	if sum.Neg7d != 1 || sum.Shock7d != -3 {
		t.Fatalf("7d: got %d/%d", sum.Neg7d, sum.Shock7d)
	}
	if sum.Neg30d != 2 {
		t.Fatalf("30d count: got %d", sum.Neg30d)
	}
	if sum.TagCounts30d[models.TagLabor] != 1 || sum.TagCounts30d[models.TagRegulatory] != 1 {
		t.Fatalf("tag counts: %v", sum.TagCounts30d)
	}
	if len(sum.TopNegative7d) != 1 {
		t.Fatalf("top negative: got %d", len(sum.TopNegative7d))
	}
}

func TestDashboardTotalsAndOrder(t *testing.T) {
	a := newTestAggregator()

	records := []models.NewsRecord{
		{Ticker: "UBER", RiskTag: models.TagLabor, ImpactScore: -3, Title: "strike",
			Source: "reuters", URL: "https://r/1", PublishedAt: windowNow.AddDate(0, 0, -1)},
		{Ticker: "UBER", RiskTag: models.TagLabor, ImpactScore: -2, Title: "union vote",
			Source: "wsj", URL: "https://w/1", PublishedAt: windowNow.AddDate(0, 0, -3)},
		{Ticker: "UBER", RiskTag: models.TagRegulatory, ImpactScore: -2, Title: "probe",
			Source: "sec", URL: "https://s/1", PublishedAt: windowNow.AddDate(0, 0, -2)},
		{Ticker: "LYFT", RiskTag: models.TagSafety, ImpactScore: -3, Title: "breach",
			Source: "cnbc", URL: "https://c/1", PublishedAt: windowNow.AddDate(0, 0, -4)},
	}

	rows := a.Dashboard(records)
	// LYFT: SAFETY + TOTAL; UBER: LABOR + REGULATORY + TOTAL.
	if len(rows) != 5 {
		t.Fatalf("got %d rows", len(rows))
	}

	if rows[0].Ticker != "LYFT" || rows[0].RiskTag != models.TagTotal {
		t.Fatalf("row 0: %s/%s", rows[0].Ticker, rows[0].RiskTag)
	}
	if rows[2].Ticker != "UBER" || rows[2].RiskTag != models.TagTotal {
		t.Fatalf("ticker TOTAL must lead, got %s/%s", rows[2].Ticker, rows[2].RiskTag)
	}
	// LABOR (shock -5) sorts before REGULATORY (shock -2).
	if rows[3].RiskTag != models.TagLabor || rows[4].RiskTag != models.TagRegulatory {
		t.Fatalf("tag order: %s, %s", rows[3].RiskTag, rows[4].RiskTag)
	}

	tot := rows[2]
	if tot.NegCount7d != 3 || tot.Shock7d != -7 {
		t.Fatalf("UBER totals: %d/%d", tot.NegCount7d, tot.Shock7d)
	}

	labor := rows[3]
	if labor.Worst7dTitle != "strike" || labor.Worst7dImpact != -3 {
		t.Fatalf("worst headline: %q/%d", labor.Worst7dTitle, labor.Worst7dImpact)
	}
}

func TestDashboardWorstHeadlineTieBreak(t *testing.T) {
	a := newTestAggregator()

	records := []models.NewsRecord{
		{Ticker: "UBER", RiskTag: models.TagLabor, ImpactScore: -3, Title: "older",
			PublishedAt: windowNow.AddDate(0, 0, -5)},
		{Ticker: "UBER", RiskTag: models.TagLabor, ImpactScore: -3, Title: "newer",
			PublishedAt: windowNow.AddDate(0, 0, -1)},
	}

	rows := a.Dashboard(records)
	for _, row := range rows {
		if row.RiskTag == models.TagLabor && row.Worst7dTitle != "newer" {
			t.Fatalf("tie must keep most recent, got %q", row.Worst7dTitle)
		}
	}
}

func TestDashboardNoNegativesEmpty(t *testing.T) {
	a := newTestAggregator()
	rows := a.Dashboard([]models.NewsRecord{
		{Ticker: "UBER", RiskTag: models.TagFinancial, ImpactScore: 2,
			PublishedAt: windowNow.AddDate(0, 0, -1)},
	})
	if len(rows) != 0 {
		t.Fatalf("positive-only corpus produced %d rows", len(rows))
	}
}
