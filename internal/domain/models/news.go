package models

import "time"

// RiskTag is the fixed classification for a news record. Tagging is
// first-match against an ordered keyword list, so the order of
// news.DefaultTagRules is part of the contract, not an implementation detail.
type RiskTag string

const (
	TagLabor       RiskTag = "LABOR"
	TagInsurance   RiskTag = "INSURANCE"
	TagRegulatory  RiskTag = "REGULATORY"
	TagSafety      RiskTag = "SAFETY"
	TagCompetition RiskTag = "COMPETITION"
	TagMacro       RiskTag = "MACRO"
	TagFinancial   RiskTag = "FINANCIAL"
	TagOther       RiskTag = "OTHER"

	// TagTotal marks the synthetic per-ticker sum row in the risk dashboard.
	TagTotal RiskTag = "TOTAL"
)

// NewsRecord is the canonical shape every source adapter maps into.
// Normalizer fills the identity fields, the tagger fills RiskTag and
// ImpactScore, and everything downstream reads it without mutation.
type NewsRecord struct {
	PublishedAt time.Time      `json:"published_at"`
	Ticker      string         `json:"ticker"`
	Title       string         `json:"title"`
	Source      string         `json:"source"`
	URL         string         `json:"url"`
	Summary     string         `json:"summary,omitempty"`
	Raw         map[string]any `json:"raw,omitempty"`

	// TimeInferred is set when the published timestamp could not be parsed
	// and the configured fallback policy supplied one instead.
	TimeInferred bool `json:"time_inferred,omitempty"`

	// Filled by scoring.
	RiskTag     RiskTag `json:"risk_tag,omitempty"`
	ImpactScore int     `json:"impact_score"`
	DedupeKey   string  `json:"dedupe_key,omitempty"`
}

// SourceResult is the per-source outcome of a fetch. A failed source carries
// its error here instead of aborting the run; the pipeline logs it and
// continues with the records that did arrive.
type SourceResult struct {
	Source  string
	Records []NewsRecord
	Err     error
}

// Confirmation describes a risk tag corroborated by enough independent,
// sufficiently credible sources.
type Confirmation struct {
	Tag           RiskTag  `json:"tag"`
	Confirmations int      `json:"confirmations"`
	Sources       []string `json:"sources"`
}

// RiskAggregateRow is one (ticker, tag) row of the windowed risk dashboard.
// Shock is the sum of impact scores over negative records only, so it is
// always <= 0. The synthetic TOTAL row sums every tag row for the ticker.
type RiskAggregateRow struct {
	Ticker      string  `json:"ticker"`
	RiskTag     RiskTag `json:"risk_tag"`
	NegCount30d int     `json:"neg_count_30d"`
	Shock30d    int     `json:"shock_30d"`
	NegCount7d  int     `json:"neg_count_7d"`
	Shock7d     int     `json:"shock_7d"`

	Worst7dTitle  string `json:"worst_7d_title"`
	Worst7dSource string `json:"worst_7d_source"`
	Worst7dURL    string `json:"worst_7d_url"`
	Worst7dImpact int    `json:"worst_7d_impact"`
}

// SentimentProxyRow holds the keyword-hit sentiment proxy per ticker,
// computed independently for the 7-day and 30-day windows.
type SentimentProxyRow struct {
	Ticker       string `json:"ticker"`
	Articles7d   int    `json:"articles_7d"`
	Articles30d  int    `json:"articles_30d"`
	Neg7d        int    `json:"neg_7d"`
	Neg30d       int    `json:"neg_30d"`
	Shock7d      int    `json:"shock_7d"`
	Shock30d     int    `json:"shock_30d"`
	PosHits7d    int    `json:"pos_hits_7d"`
	NegHits7d    int    `json:"neg_hits_7d"`
	ProxyScore7d int    `json:"proxy_score_7d"`
	ProxyScore30 int    `json:"proxy_score_30d"`
}

// NewsSummary is the compact per-ticker view the balance/risk bucket reads.
type NewsSummary struct {
	Neg7d         int             `json:"neg_7d"`
	Neg30d        int             `json:"neg_30d"`
	Shock7d       int             `json:"shock_7d"`
	TagCounts30d  map[RiskTag]int `json:"tag_counts_30d"`
	TopNegative7d []NewsRecord    `json:"top_negative_titles_7d"`
}

// EvidenceRow is one flat row of the verifiable-evidence table handed to
// external renderers: worst impact first, then newest.
type EvidenceRow struct {
	PublishedAt time.Time `json:"published_at"`
	Ticker      string    `json:"ticker"`
	Source      string    `json:"source"`
	RiskTag     RiskTag   `json:"risk_tag"`
	ImpactScore int       `json:"impact_score"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
}
