package scoring

import (
	"testing"
	"time"

	"EquityPulse/internal/domain/models"
)

func annualFCF(values ...float64) []models.FundamentalsPeriod {
	out := make([]models.FundamentalsPeriod, len(values))
	for i, v := range values {
		out[i] = models.FundamentalsPeriod{
			Ticker:       "UBER",
			PeriodEnd:    time.Date(2020+i, 12, 31, 0, 0, 0, 0, time.UTC),
			FreeCashFlow: models.Float(v),
		}
	}
	return out
}

func TestRedFlagsVolatileAndNegativeFCF(t *testing.T) {
	flags := RedFlags(RedFlagInputs{
		Ticker:     "UBER",
		AnnualHist: annualFCF(100, -50, 200, -100),
	})

	if !hasFlag(flags, "FCF_VOLATILE") {
		t.Fatalf("expected FCF_VOLATILE, got %v", flags)
	}
	if !hasFlag(flags, "FCF_NEGATIVE") {
		t.Fatalf("expected FCF_NEGATIVE, got %v", flags)
	}
	// HIGH sorts ahead of MED.
	if flags[0].ID != "FCF_NEGATIVE" || flags[0].Severity != models.SeverityHigh {
		t.Fatalf("sort order: %v", flags)
	}
}

func TestRedFlagsStableFCFClean(t *testing.T) {
	flags := RedFlags(RedFlagInputs{
		Ticker:     "UBER",
		AnnualHist: annualFCF(100, 105, 100, 110),
	})
	if len(flags) != 0 {
		t.Fatalf("stable positive FCF flagged: %v", flags)
	}
}

func TestRedFlagsMarginCompression(t *testing.T) {
	hist := make([]models.FundamentalsPeriod, 3)
	for i, m := range []float64{20, 15, 10} {
		hist[i] = models.FundamentalsPeriod{
			PeriodEnd:    time.Date(2022+i, 12, 31, 0, 0, 0, 0, time.UTC),
			FCFMarginPct: models.Float(m),
		}
	}

	flags := RedFlags(RedFlagInputs{Ticker: "UBER", AnnualHist: hist})
	if !hasFlag(flags, "MARGIN_COMPRESS") {
		t.Fatalf("got %v", flags)
	}
}

func TestRedFlagsLeverageAndValuation(t *testing.T) {
	row := &models.CompsRow{
		Ticker:          "UBER",
		NetDebtToFCFTTM: models.Float(7),
		FCFYield:        models.Float(0.005),
		RevenueYoYPct:   models.Float(5),
	}

	flags := RedFlags(RedFlagInputs{Ticker: "UBER", CompsRow: row})
	if !hasFlag(flags, "LEVERAGE_HIGH") || !hasFlag(flags, "VALUATION_STRETCHED") {
		t.Fatalf("got %v", flags)
	}
	if flags[0].ID != "LEVERAGE_HIGH" {
		t.Fatalf("HIGH must lead: %v", flags)
	}

	// A thin yield with real growth behind it is not stretched.
	row.RevenueYoYPct = models.Float(15)
	flags = RedFlags(RedFlagInputs{Ticker: "UBER", CompsRow: row})
	if hasFlag(flags, "VALUATION_STRETCHED") {
		t.Fatalf("growth should excuse the yield: %v", flags)
	}
}

func TestRedFlagsDashboardSpike(t *testing.T) {
	dash := []models.RiskAggregateRow{
		{Ticker: "UBER", RiskTag: models.TagLabor, NegCount30d: 3},
		{Ticker: "UBER", RiskTag: models.TagTotal, NegCount30d: 9},
		{Ticker: "LYFT", RiskTag: models.TagSafety, NegCount30d: 5},
		{Ticker: "UBER", RiskTag: models.TagMacro, NegCount30d: 2},
	}

	flags := RedFlags(RedFlagInputs{Ticker: "UBER", Dashboard: dash})
	if len(flags) != 1 {
		t.Fatalf("got %v", flags)
	}
	if flags[0].ID != "RISK_TAG_SPIKE_LABOR" {
		t.Fatalf("got %s", flags[0].ID)
	}
}

func TestRedFlagsNewsShock(t *testing.T) {
	proxy := &models.SentimentProxyRow{Ticker: "UBER", Shock7d: -10}
	flags := RedFlags(RedFlagInputs{Ticker: "UBER", ProxyRow: proxy})
	if !hasFlag(flags, "NEWS_SHOCK_7D") {
		t.Fatalf("got %v", flags)
	}

	proxy.Shock7d = -9
	if flags := RedFlags(RedFlagInputs{Ticker: "UBER", ProxyRow: proxy}); len(flags) != 0 {
		t.Fatalf("shock above threshold flagged: %v", flags)
	}
}

func TestMergeFlags(t *testing.T) {
	bucket := []models.RedFlag{
		{ID: "NEWS_NEG_7D", Severity: models.SeverityMed, Title: "from buckets"},
		{ID: "FCF_TTM_LOW", Severity: models.SeverityLow},
	}
	independent := []models.RedFlag{
		{ID: "FCF_NEGATIVE", Severity: models.SeverityHigh},
		{ID: "NEWS_NEG_7D", Severity: models.SeverityMed, Title: "duplicate"},
	}

	merged := MergeFlags(bucket, independent)
	if len(merged) != 3 {
		t.Fatalf("got %d flags", len(merged))
	}
	if merged[0].ID != "FCF_NEGATIVE" {
		t.Fatalf("HIGH must lead: %v", merged)
	}
	for _, f := range merged {
		if f.ID == "NEWS_NEG_7D" && f.Title != "from buckets" {
			t.Fatalf("first occurrence must win, got %q", f.Title)
		}
	}
}
