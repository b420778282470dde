package models

import "time"

// Severity orders red flags HIGH before MED before LOW.
type Severity string

const (
	SeverityHigh Severity = "HIGH"
	SeverityMed  Severity = "MED"
	SeverityLow  Severity = "LOW"
)

// SeverityRank is the sort key for red-flag ordering.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMed:
		return 1
	case SeverityLow:
		return 2
	}
	return 9
}

// RedFlag is one independent warning with a structured payload so renderers
// can show the underlying number next to the headline.
type RedFlag struct {
	ID       string         `json:"id"`
	Severity Severity       `json:"severity"`
	Title    string         `json:"title"`
	Value    map[string]any `json:"value,omitempty"`
}

// BucketScores holds the five weighted dimensions of the composite score,
// each already clamped to its own maximum.
type BucketScores struct {
	CashLevel   int `json:"cash_level"`   // max 25
	Valuation   int `json:"valuation"`    // max 20
	Growth      int `json:"growth"`       // max 20
	Quality     int `json:"quality"`      // max 15
	BalanceRisk int `json:"balance_risk"` // max 20
}

// Sum is the raw bucket total before the final [0,100] clamp.
func (b BucketScores) Sum() int {
	return b.CashLevel + b.Valuation + b.Growth + b.Quality + b.BalanceRisk
}

// Rating labels for the composite score.
const (
	RatingBuy   = "BUY"
	RatingHold  = "HOLD"
	RatingAvoid = "AVOID"
)

// PeerRanks maps metric name to the primary ticker's percentile position in
// the peer universe. A nil entry means the rank was undefined (missing value
// or empty peer column).
type PeerRanks struct {
	FCFYield     *float64 `json:"fcf_yield_pct_rank"`
	RevenueYoY   *float64 `json:"revenue_ttm_yoy_pct_rank"`
	FCFYoY       *float64 `json:"fcf_ttm_yoy_pct_rank"`
	FCFMarginTTM *float64 `json:"fcf_margin_ttm_pct_rank"`
}

// Scenario is one leg of the range model: FCF projected N years at an
// assumed growth rate, capitalized at a target FCF yield.
type Scenario struct {
	FCFGrowth        float64  `json:"fcf_growth"`
	TargetFCFYield   float64  `json:"target_fcf_yield"`
	ProjectedFCF     float64  `json:"projected_fcf"`
	ImpliedMarketCap *float64 `json:"implied_market_cap"`
	ImpliedUpsidePct *float64 `json:"implied_upside_pct"`
}

// ScenarioSummary carries the bear/base/bull range model. Nil legs mean the
// inputs (FCF TTM, market cap) were missing.
type ScenarioSummary struct {
	ProjectionYears int       `json:"projection_years"`
	CurrentFCFYield *float64  `json:"current_fcf_yield"`
	Bear            *Scenario `json:"bear"`
	Base            *Scenario `json:"base"`
	Bull            *Scenario `json:"bull"`
	Notes           []string  `json:"notes"`
}

// DecisionResult is the complete output of one scoring run. Every field is
// always populated, possibly with zero/empty placeholders, so downstream
// renderers never need to re-derive logic or handle absent keys.
type DecisionResult struct {
	Ticker       string             `json:"ticker"`
	AsOf         time.Time          `json:"as_of"`
	Score        int                `json:"score"`
	Rating       string             `json:"rating"`
	Buckets      BucketScores       `json:"bucket_scores"`
	PeerRanks    PeerRanks          `json:"peer_ranks"`
	RedFlags     []RedFlag          `json:"red_flags"`
	NewsSummary  NewsSummary        `json:"news_summary"`
	SentimentRow *SentimentProxyRow `json:"news_proxy,omitempty"`

	Completeness        int      `json:"data_completeness_score"`
	CompletenessMissing []string `json:"data_completeness_missing,omitempty"`

	Scenarios *ScenarioSummary `json:"scenario_summary,omitempty"`
}

// BucketLight maps a bucket score to a traffic light for the decision card.
func BucketLight(score int) string {
	switch {
	case score >= 17:
		return "GREEN"
	case score >= 13:
		return "YELLOW"
	default:
		return "RED"
	}
}

// DecisionCard is the compact one-screen view of a run: composite score and
// rating, a traffic light per bucket, and the completeness and confidence
// numbers a reader needs to judge how much to trust the rest.
type DecisionCard struct {
	Ticker       string            `json:"ticker"`
	AsOf         time.Time         `json:"as_of"`
	Score        int               `json:"score"`
	Rating       string            `json:"rating"`
	Lights       map[string]string `json:"bucket_lights"`
	RedFlagCount int               `json:"red_flag_count"`
	Completeness int               `json:"data_completeness_score"`
	Confidence   int               `json:"confidence_score"`
}

// BuildCard condenses a decision and its confidence score into a card.
func BuildCard(d *DecisionResult, confidence int) DecisionCard {
	return DecisionCard{
		Ticker: d.Ticker,
		AsOf:   d.AsOf,
		Score:  d.Score,
		Rating: d.Rating,
		Lights: map[string]string{
			"cash_level":   BucketLight(d.Buckets.CashLevel),
			"valuation":    BucketLight(d.Buckets.Valuation),
			"growth":       BucketLight(d.Buckets.Growth),
			"quality":      BucketLight(d.Buckets.Quality),
			"balance_risk": BucketLight(d.Buckets.BalanceRisk),
		},
		RedFlagCount: len(d.RedFlags),
		Completeness: d.Completeness,
		Confidence:   confidence,
	}
}
