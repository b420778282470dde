package scoring

import (
	"math"
	"testing"

	"EquityPulse/internal/domain/models"
)

func TestScenariosRangeModel(t *testing.T) {
	row := &models.CompsRow{
		Ticker:        "UBER",
		FCFTTM:        models.Float(5e9),
		MarketCap:     models.Float(100e9),
		RevenueYoYPct: models.Float(15),
		FCFYield:      models.Float(0.05),
	}

	s := Scenarios(row)
	if s.Base == nil || s.Bull == nil || s.Bear == nil {
		t.Fatalf("incomplete scenarios: %+v", s)
	}
	if s.ProjectionYears != 3 {
		t.Fatalf("years: %d", s.ProjectionYears)
	}
	if s.CurrentFCFYield == nil || *s.CurrentFCFYield != 0.05 {
		t.Fatalf("current yield: %v", s.CurrentFCFYield)
	}

	// Base: 15% growth for 3y, capitalized at the current 5% yield.
	wantFCF := 5e9 * 1.15 * 1.15 * 1.15
	if math.Abs(s.Base.ProjectedFCF-wantFCF) > 1 {
		t.Fatalf("base projected FCF: %v", s.Base.ProjectedFCF)
	}
	if s.Base.ImpliedMarketCap == nil {
		t.Fatalf("base implied cap missing")
	}
	wantCap := wantFCF / 0.05
	if math.Abs(*s.Base.ImpliedMarketCap-wantCap) > 1 {
		t.Fatalf("base implied cap: %v", *s.Base.ImpliedMarketCap)
	}

	// Bull assumes faster growth and a richer multiple than bear.
	if s.Bull.FCFGrowth <= s.Bear.FCFGrowth {
		t.Fatalf("growth order: bull %v bear %v", s.Bull.FCFGrowth, s.Bear.FCFGrowth)
	}
	if s.Bull.TargetFCFYield >= s.Bear.TargetFCFYield {
		t.Fatalf("yield order: bull %v bear %v", s.Bull.TargetFCFYield, s.Bear.TargetFCFYield)
	}
	if *s.Bull.ImpliedUpsidePct <= *s.Bear.ImpliedUpsidePct {
		t.Fatalf("upside order: bull %v bear %v", *s.Bull.ImpliedUpsidePct, *s.Bear.ImpliedUpsidePct)
	}
}

func TestScenariosDegradeToNotes(t *testing.T) {
	s := Scenarios(nil)
	if s.Base != nil || s.Bull != nil || s.Bear != nil {
		t.Fatalf("nil row must not produce scenarios")
	}
	if len(s.Notes) < 3 {
		t.Fatalf("notes: %v", s.Notes)
	}

	s = Scenarios(&models.CompsRow{Ticker: "UBER", FCFTTM: models.Float(0), MarketCap: models.Float(1e9)})
	if s.Base != nil {
		t.Fatalf("zero FCF must not produce scenarios")
	}
}
