package scoring

import (
	"testing"

	"EquityPulse/internal/domain/models"
)

func TestCompletenessAllPresent(t *testing.T) {
	score, missing := Completeness(CompletenessInputs{
		Ticker:     "UBER",
		Comps:      []models.CompsRow{{Ticker: "UBER"}},
		AnnualHist: []models.FundamentalsPeriod{{Ticker: "UBER"}},
		Corpus:     []models.NewsRecord{{Ticker: "UBER"}},
		Proxy:      []models.SentimentProxyRow{{Ticker: "UBER"}},
		Dashboard:  []models.RiskAggregateRow{{Ticker: "UBER"}},
	})
	if score != 100 {
		t.Fatalf("got %d", score)
	}
	if len(missing) != 0 {
		t.Fatalf("missing: %v", missing)
	}
}

func TestCompletenessNamesMissing(t *testing.T) {
	score, missing := Completeness(CompletenessInputs{
		Ticker: "UBER",
		Comps:  []models.CompsRow{{Ticker: "LYFT"}},
		Corpus: []models.NewsRecord{{Ticker: "UBER"}},
	})
	// 6 checks, 2 pass (comps present, corpus present).
	if score != 33 {
		t.Fatalf("got %d", score)
	}
	if len(missing) != 4 {
		t.Fatalf("missing: %v", missing)
	}
}

func TestCompletenessEmpty(t *testing.T) {
	score, missing := Completeness(CompletenessInputs{Ticker: "UBER"})
	if score != 0 {
		t.Fatalf("got %d", score)
	}
	// 5 named tables, no ticker check without a comps table.
	if len(missing) != 5 {
		t.Fatalf("missing: %v", missing)
	}
}
