package scoring

import (
	"EquityPulse/internal/domain/models"
)

// scenarioYears is the projection horizon of the range model.
const scenarioYears = 3

// Scenarios builds the bear/base/bull range model: project TTM FCF forward
// at an assumed growth rate and capitalize it at a target FCF yield. A
// context tool, not a precise valuation; missing inputs degrade to notes.
func Scenarios(row *models.CompsRow) *models.ScenarioSummary {
	s := &models.ScenarioSummary{
		ProjectionYears: scenarioYears,
		Notes: []string{
			"Simple range model for context, not a precise valuation.",
			"If growth slows or margins compress, implied value falls; if they improve, it rises.",
		},
	}
	if row == nil {
		s.Notes = append(s.Notes, "Missing comps row; scenario model is limited.")
		return s
	}
	if row.FCFTTM == nil || row.MarketCap == nil || *row.FCFTTM == 0 {
		s.Notes = append(s.Notes, "Missing FCF TTM or market cap; cannot compute scenarios reliably.")
		return s
	}

	fcfTTM, mcap := *row.FCFTTM, *row.MarketCap

	baseGrowth := 0.10
	if row.RevenueYoYPct != nil {
		baseGrowth = *row.RevenueYoYPct / 100
	}

	curYield := fcfTTM / mcap
	if row.FCFYield != nil && *row.FCFYield > 0 {
		curYield = *row.FCFYield
	}
	s.CurrentFCFYield = models.Float(curYield)

	baseTargetYield := clamp(curYield, 0.02, 0.08)

	build := func(growth, targetYield float64) *models.Scenario {
		fcfN := fcfTTM
		for i := 0; i < scenarioYears; i++ {
			fcfN *= 1 + growth
		}
		sc := &models.Scenario{
			FCFGrowth:      growth,
			TargetFCFYield: targetYield,
			ProjectedFCF:   fcfN,
		}
		if targetYield > 0 {
			implied := fcfN / targetYield
			sc.ImpliedMarketCap = models.Float(implied)
			sc.ImpliedUpsidePct = models.Float((implied/mcap - 1) * 100)
		}
		return sc
	}

	s.Base = build(clamp(baseGrowth, 0.03, 0.25), baseTargetYield)
	s.Bull = build(clamp(baseGrowth+0.05, 0.05, 0.35), maxf(baseTargetYield-0.01, 0.015))
	s.Bear = build(maxf(baseGrowth-0.08, -0.05), minf(baseTargetYield+0.02, 0.12))
	return s
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
