package models

import (
	"testing"
	"time"
)

func TestBucketLightThresholds(t *testing.T) {
	if got := BucketLight(17); got != "GREEN" {
		t.Fatalf("expected GREEN, got %s", got)
	}
	if got := BucketLight(16); got != "YELLOW" {
		t.Fatalf("expected YELLOW, got %s", got)
	}
	if got := BucketLight(13); got != "YELLOW" {
		t.Fatalf("expected YELLOW, got %s", got)
	}
	if got := BucketLight(12); got != "RED" {
		t.Fatalf("expected RED, got %s", got)
	}
}

func TestBuildCard(t *testing.T) {
	d := &DecisionResult{
		Ticker: "UBER",
		AsOf:   time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Score:  82,
		Rating: RatingBuy,
		Buckets: BucketScores{
			CashLevel:   25,
			Valuation:   18,
			Growth:      14,
			Quality:     9,
			BalanceRisk: 16,
		},
		RedFlags:     []RedFlag{{ID: "FCF_VOLATILE", Severity: SeverityMed}},
		Completeness: 83,
	}

	card := BuildCard(d, 74)

	if card.Ticker != "UBER" || card.Score != 82 || card.Rating != RatingBuy {
		t.Fatalf("unexpected card header: %+v", card)
	}
	if card.Lights["cash_level"] != "GREEN" {
		t.Fatalf("expected GREEN cash_level, got %s", card.Lights["cash_level"])
	}
	if card.Lights["valuation"] != "GREEN" {
		t.Fatalf("expected GREEN valuation, got %s", card.Lights["valuation"])
	}
	if card.Lights["growth"] != "YELLOW" {
		t.Fatalf("expected YELLOW growth, got %s", card.Lights["growth"])
	}
	if card.Lights["quality"] != "RED" {
		t.Fatalf("expected RED quality, got %s", card.Lights["quality"])
	}
	if card.RedFlagCount != 1 {
		t.Fatalf("expected 1 red flag, got %d", card.RedFlagCount)
	}
	if card.Completeness != 83 || card.Confidence != 74 {
		t.Fatalf("expected completeness 83 and confidence 74, got %d/%d", card.Completeness, card.Confidence)
	}
}
