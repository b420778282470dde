package scoring

import (
	"fmt"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
)

// coreRiskTags are the themes whose 30-day negatives compound into a single
// balance-sheet penalty: persistent problems here tend to become costs.
var coreRiskTags = []models.RiskTag{models.TagLabor, models.TagInsurance, models.TagRegulatory}

// DecisionScorer combines fundamentals, peer ranks and aggregated news
// signals into the composite 0-100 score. Stateless: every call is a pure
// function of its inputs.
type DecisionScorer struct {
	now func() time.Time
}

func NewDecisionScorer(now func() time.Time) *DecisionScorer {
	if now == nil {
		now = time.Now
	}
	return &DecisionScorer{now: now}
}

// Score ranks the primary ticker inside the comps table, fills the five
// buckets, and returns a complete result even when inputs are missing:
// absent values score low (never negative) and surface as red flags rather
// than errors.
func (s *DecisionScorer) Score(
	ticker string,
	comps []models.CompsRow,
	summary models.NewsSummary,
	proxy *models.SentimentProxyRow,
) models.DecisionResult {
	ticker = strings.ToUpper(ticker)

	res := models.DecisionResult{
		Ticker:       ticker,
		AsOf:         s.now().UTC(),
		NewsSummary:  summary,
		SentimentRow: proxy,
		RedFlags:     []models.RedFlag{},
	}

	var row *models.CompsRow
	for i := range comps {
		if strings.EqualFold(comps[i].Ticker, ticker) {
			row = &comps[i]
			break
		}
	}

	var fcfTTM, fcfYield, revYoY, fcfYoY, margin, ndFCF *float64
	if row != nil {
		fcfTTM, fcfYield = row.FCFTTM, row.FCFYield
		revYoY, fcfYoY = row.RevenueYoYPct, row.FCFYoYPct
		margin, ndFCF = row.FCFMarginTTMPct, row.NetDebtToFCFTTM
	}

	res.PeerRanks = models.PeerRanks{
		FCFYield:     Percentile(fcfYield, column(comps, func(r models.CompsRow) *float64 { return r.FCFYield }), true),
		RevenueYoY:   Percentile(revYoY, column(comps, func(r models.CompsRow) *float64 { return r.RevenueYoYPct }), true),
		FCFYoY:       Percentile(fcfYoY, column(comps, func(r models.CompsRow) *float64 { return r.FCFYoYPct }), true),
		FCFMarginTTM: Percentile(margin, column(comps, func(r models.CompsRow) *float64 { return r.FCFMarginTTMPct }), true),
	}

	flag := func(id string, sev models.Severity, title string, value map[string]any) {
		res.RedFlags = append(res.RedFlags, models.RedFlag{ID: id, Severity: sev, Title: title, Value: value})
	}

	// Cash level (max 25): absolute FCF ladder.
	switch {
	case fcfTTM == nil:
		res.Buckets.CashLevel = 0
		flag("FCF_TTM_MISSING", models.SeverityLow, "TTM free cash flow missing", nil)
	case *fcfTTM >= 12e9:
		res.Buckets.CashLevel = 25
	case *fcfTTM >= 8e9:
		res.Buckets.CashLevel = 21
	case *fcfTTM >= 4e9:
		res.Buckets.CashLevel = 15
	case *fcfTTM >= 1e9:
		res.Buckets.CashLevel = 8
	default:
		res.Buckets.CashLevel = 3
		flag("FCF_TTM_LOW", models.SeverityLow, "Low TTM free cash flow", map[string]any{"fcf_ttm": *fcfTTM})
	}

	// Valuation (max 20): absolute yield ladder plus peer-rank bonus.
	val := 0.0
	if fcfYield == nil {
		flag("FCF_YIELD_MISSING", models.SeverityLow, "FCF yield missing", nil)
	} else {
		switch {
		case *fcfYield >= 0.08:
			val += 10
		case *fcfYield >= 0.06:
			val += 8
		case *fcfYield >= 0.04:
			val += 5
		case *fcfYield >= 0.025:
			val += 3
		default:
			val += 1
		}
	}
	if r := res.PeerRanks.FCFYield; r != nil {
		switch {
		case *r >= 75:
			val += 10
		case *r >= 50:
			val += 7
		case *r >= 25:
			val += 4
		default:
			val += 2
		}
	}
	res.Buckets.Valuation = int(clamp(val, 0, 20))

	// Growth (max 20): revenue and FCF growth tiers plus peer-rank legs.
	g := 0.0
	if revYoY != nil {
		switch {
		case *revYoY >= 20:
			g += 6
		case *revYoY >= 10:
			g += 4
		case *revYoY >= 5:
			g += 2
		case *revYoY < 0:
			g -= 3
			flag("REVENUE_DECLINING", models.SeverityMed, "TTM revenue declining YoY", map[string]any{"revenue_ttm_yoy_pct": *revYoY})
		}
	}
	if fcfYoY != nil {
		switch {
		case *fcfYoY >= 40:
			g += 6
		case *fcfYoY >= 15:
			g += 4
		case *fcfYoY >= 5:
			g += 2
		case *fcfYoY < 0:
			g -= 5
			flag("FCF_DECLINING", models.SeverityMed, "TTM FCF declining YoY", map[string]any{"fcf_ttm_yoy_pct": *fcfYoY})
		}
	}
	g += rankLeg(res.PeerRanks.RevenueYoY)
	g += rankLeg(res.PeerRanks.FCFYoY)
	res.Buckets.Growth = int(clamp(g, 0, 20))

	// Quality (max 15): margin tier plus peer-rank leg.
	q := 0.0
	if margin != nil {
		switch {
		case *margin >= 18:
			q += 9
		case *margin >= 12:
			q += 7
		case *margin >= 8:
			q += 5
		case *margin >= 4:
			q += 3
		default:
			q += 1
		}
	}
	if r := res.PeerRanks.FCFMarginTTM; r != nil {
		switch {
		case *r >= 75:
			q += 6
		case *r >= 50:
			q += 4
		case *r >= 25:
			q += 3
		default:
			q += 2
		}
	}
	res.Buckets.Quality = int(clamp(q, 0, 15))

	// Balance/risk (max 20): starts full and subtracts. Deductions are
	// purely additive so application order cannot change the result.
	b := 20.0
	if ndFCF != nil {
		switch {
		case *ndFCF >= 3.0:
			b -= 8
			flag("NET_DEBT_HIGH", models.SeverityMed, "Net debt high vs TTM FCF", map[string]any{"net_debt_to_fcf_ttm": *ndFCF})
		case *ndFCF >= 1.5:
			b -= 4
		}
	} else {
		b -= 2
	}

	switch {
	case summary.Neg7d >= 6:
		b -= 8
	case summary.Neg7d >= 3:
		b -= 5
	case summary.Neg7d >= 1:
		b -= 2
	}

	switch {
	case summary.Shock7d <= -10:
		b -= 4
	case summary.Shock7d <= -6:
		b -= 2
	}

	coreHits := 0
	for _, tag := range coreRiskTags {
		coreHits += summary.TagCounts30d[tag]
	}
	switch {
	case coreHits >= 6:
		b -= 4
		flag("CORE_RISK_FREQUENT", models.SeverityMed, "Frequent LABOR/INSURANCE/REGULATORY negatives (30d)", map[string]any{"core_hits_30d": coreHits})
	case coreHits >= 3:
		b -= 2
	}

	if proxy != nil {
		switch p := proxy.ProxyScore7d; {
		case p <= 25:
			b -= 4
		case p <= 35:
			b -= 2
		case p >= 70:
			b += 1
		}
	}
	res.Buckets.BalanceRisk = int(clamp(b, 0, 20))

	res.Score = int(clamp(float64(res.Buckets.Sum()), 0, 100))
	switch {
	case res.Score >= 80:
		res.Rating = models.RatingBuy
	case res.Score >= 65:
		res.Rating = models.RatingHold
	default:
		res.Rating = models.RatingAvoid
	}

	if summary.Neg7d >= 3 {
		flag("NEWS_NEG_7D", models.SeverityMed,
			fmt.Sprintf("News: %d negative headlines in last 7d (shock %d)", summary.Neg7d, summary.Shock7d),
			map[string]any{"neg_7d": summary.Neg7d, "shock_7d": summary.Shock7d})
	}

	return res
}

func rankLeg(rank *float64) float64 {
	if rank == nil {
		return 0
	}
	switch {
	case *rank >= 75:
		return 4
	case *rank >= 50:
		return 3
	case *rank >= 25:
		return 2
	default:
		return 1
	}
}

func column(comps []models.CompsRow, pick func(models.CompsRow) *float64) []*float64 {
	out := make([]*float64, 0, len(comps))
	for _, r := range comps {
		out = append(out, pick(r))
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
