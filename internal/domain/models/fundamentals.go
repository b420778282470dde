package models

import "time"

// FundamentalsPeriod is one reporting period (quarterly or annual) with the
// raw flows the engine consumes. FreeCashFlow is operating cash flow minus
// capex spend; nil means the inputs were missing for that period.
type FundamentalsPeriod struct {
	Ticker            string    `json:"ticker"`
	PeriodEnd         time.Time `json:"period_end"`
	Revenue           *float64  `json:"revenue"`
	OperatingCashFlow *float64  `json:"operating_cash_flow"`
	CapexSpend        *float64  `json:"capex_spend"`
	FreeCashFlow      *float64  `json:"free_cash_flow"`
	FCFMarginPct      *float64  `json:"fcf_margin_pct,omitempty"`
	Cash              *float64  `json:"cash"`
	Debt              *float64  `json:"debt"`
}

// TTMRow is a trailing-twelve-months roll-up of four quarters ending at
// PeriodEnd. YoY fields compare against the TTM window four quarters back.
type TTMRow struct {
	Ticker          string    `json:"ticker"`
	PeriodEnd       time.Time `json:"period_end"`
	RevenueTTM      *float64  `json:"revenue_ttm"`
	FCFTTM          *float64  `json:"fcf_ttm"`
	FCFMarginTTMPct *float64  `json:"fcf_margin_ttm_pct"`
	RevenueYoYPct   *float64  `json:"revenue_ttm_yoy_pct"`
	FCFYoYPct       *float64  `json:"fcf_ttm_yoy_pct"`
	Cash            *float64  `json:"cash"`
	Debt            *float64  `json:"debt"`
}

// Quote is the market snapshot joined onto the latest TTM row.
type Quote struct {
	Symbol    string   `json:"symbol"`
	Price     *float64 `json:"price"`
	MarketCap *float64 `json:"market_cap"`
}

// CompsRow is one ticker of the peer comparison table. All fields are
// pointers: a missing value stays missing and percentile ranking simply
// skips it rather than inventing a zero.
type CompsRow struct {
	Ticker          string     `json:"ticker"`
	Price           *float64   `json:"price"`
	MarketCap       *float64   `json:"market_cap"`
	PeriodEnd       *time.Time `json:"period_end"`
	RevenueTTM      *float64   `json:"revenue_ttm"`
	RevenueYoYPct   *float64   `json:"revenue_ttm_yoy_pct"`
	FCFTTM          *float64   `json:"fcf_ttm"`
	FCFYoYPct       *float64   `json:"fcf_ttm_yoy_pct"`
	FCFMarginTTMPct *float64   `json:"fcf_margin_ttm_pct"`
	Cash            *float64   `json:"cash"`
	Debt            *float64   `json:"debt"`
	NetDebt         *float64   `json:"net_debt"`
	FCFYield        *float64   `json:"fcf_yield"`
	NetDebtToFCFTTM *float64   `json:"net_debt_to_fcf_ttm"`
}

// Float returns a pointer to v. Comps and fundamentals builders use it when
// lifting computed values into the optional fields above.
func Float(v float64) *float64 { return &v }
