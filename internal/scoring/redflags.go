package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"EquityPulse/internal/domain/models"
)

// RedFlagInputs gathers everything the independent red-flag rules inspect.
// Any field may be empty/nil; a missing input simply skips its rules.
type RedFlagInputs struct {
	Ticker     string
	AnnualHist []models.FundamentalsPeriod
	CompsRow   *models.CompsRow
	ProxyRow   *models.SentimentProxyRow
	Dashboard  []models.RiskAggregateRow
}

// RedFlags evaluates the independent warning rules and returns the flags
// sorted HIGH, MED, LOW. These run outside bucket scoring so a red flag can
// never be argued away by a good composite score.
func RedFlags(in RedFlagInputs) []models.RedFlag {
	var flags []models.RedFlag
	add := func(id string, sev models.Severity, title string, value map[string]any) {
		flags = append(flags, models.RedFlag{ID: id, Severity: sev, Title: title, Value: value})
	}

	fcf := fcfSeries(in.AnnualHist)
	if len(fcf) >= 4 {
		if vol := coefficientOfVariation(fcf); vol >= 0.8 {
			add("FCF_VOLATILE", models.SeverityMed, "Free cash flow is volatile",
				map[string]any{"fcf_volatility_proxy": round2(vol)})
		}
	}
	if len(fcf) >= 2 && fcf[len(fcf)-1] < 0 {
		add("FCF_NEGATIVE", models.SeverityHigh, "Free cash flow is negative",
			map[string]any{"latest_fcf": fcf[len(fcf)-1]})
	}

	margins := marginSeries(in.AnnualHist)
	if len(margins) >= 3 {
		if slope := trendSlope(margins); slope < -1.5 {
			add("MARGIN_COMPRESS", models.SeverityMed, "Cash margin is compressing",
				map[string]any{"trend_slope": round2(slope)})
		}
	}

	if in.CompsRow != nil {
		if nd := in.CompsRow.NetDebtToFCFTTM; nd != nil && *nd > 6 {
			add("LEVERAGE_HIGH", models.SeverityHigh, "Leverage looks high vs cash generation",
				map[string]any{"net_debt_to_fcf_ttm": *nd})
		}
		y, g := in.CompsRow.FCFYield, in.CompsRow.RevenueYoYPct
		if y != nil && *y < 0.01 && (g == nil || *g < 10) {
			value := map[string]any{"fcf_yield": *y}
			if g != nil {
				value["revenue_ttm_yoy_pct"] = *g
			}
			add("VALUATION_STRETCHED", models.SeverityMed, "Valuation may be stretched vs cash", value)
		}
	}

	for _, row := range in.Dashboard {
		if !strings.EqualFold(row.Ticker, in.Ticker) || row.RiskTag == models.TagTotal {
			continue
		}
		if row.NegCount30d >= 3 {
			add("RISK_TAG_SPIKE_"+string(row.RiskTag), models.SeverityMed,
				fmt.Sprintf("Repeated negative risk theme: %s", row.RiskTag),
				map[string]any{"risk_tag": row.RiskTag, "neg_count_30d": row.NegCount30d})
		}
	}

	if in.ProxyRow != nil && in.ProxyRow.Shock7d <= -10 {
		add("NEWS_SHOCK_7D", models.SeverityMed, "Severe negative news shock (7 days)",
			map[string]any{"shock_7d": in.ProxyRow.Shock7d, "shock_30d": in.ProxyRow.Shock30d})
	}

	SortFlags(flags)
	return flags
}

// SortFlags orders flags HIGH, MED, LOW, stable within a severity.
func SortFlags(flags []models.RedFlag) {
	sort.SliceStable(flags, func(i, j int) bool {
		return models.SeverityRank(flags[i].Severity) < models.SeverityRank(flags[j].Severity)
	})
}

// MergeFlags combines bucket-derived and independent flags, dropping exact
// ID duplicates (first occurrence wins) and re-sorting by severity.
func MergeFlags(lists ...[]models.RedFlag) []models.RedFlag {
	seen := make(map[string]struct{})
	var out []models.RedFlag
	for _, list := range lists {
		for _, f := range list {
			if _, dup := seen[f.ID]; dup {
				continue
			}
			seen[f.ID] = struct{}{}
			out = append(out, f)
		}
	}
	SortFlags(out)
	return out
}

func fcfSeries(hist []models.FundamentalsPeriod) []float64 {
	out := make([]float64, 0, len(hist))
	for _, p := range sortedByPeriod(hist) {
		if p.FreeCashFlow != nil {
			out = append(out, *p.FreeCashFlow)
		}
	}
	return out
}

func marginSeries(hist []models.FundamentalsPeriod) []float64 {
	out := make([]float64, 0, len(hist))
	for _, p := range sortedByPeriod(hist) {
		if p.FCFMarginPct != nil {
			out = append(out, *p.FCFMarginPct)
		}
	}
	return out
}

func sortedByPeriod(hist []models.FundamentalsPeriod) []models.FundamentalsPeriod {
	s := make([]models.FundamentalsPeriod, len(hist))
	copy(s, hist)
	sort.SliceStable(s, func(i, j int) bool { return s[i].PeriodEnd.Before(s[j].PeriodEnd) })
	return s
}

// coefficientOfVariation is std/mean(|x|): a cheap volatility proxy.
func coefficientOfVariation(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean, absMean := 0.0, 0.0
	for _, x := range xs {
		mean += x
		absMean += math.Abs(x)
	}
	mean /= float64(len(xs))
	absMean /= float64(len(xs))
	if absMean <= 0 {
		return 0
	}
	variance := 0.0
	for _, x := range xs {
		variance += (x - mean) * (x - mean)
	}
	variance /= float64(len(xs) - 1)
	return math.Sqrt(variance) / absMean
}

// trendSlope is the simple first-to-last slope proxy; positive = improving.
func trendSlope(xs []float64) float64 {
	if len(xs) < 3 {
		return 0
	}
	steps := float64(len(xs) - 1)
	return (xs[len(xs)-1] - xs[0]) / math.Max(1, steps)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
