package models

// ConfidenceBreakdown exposes the inputs the confidence scorer derived from
// the corpus so reports can show how the score came about.
type ConfidenceBreakdown struct {
	TotalRows          int            `json:"total_rows"`
	SourceCounts       map[string]int `json:"source_counts"`
	URLRatio           float64        `json:"url_ratio"`
	SECRows            int            `json:"sec_rows"`
	WhitelistLoaded    bool           `json:"whitelist_loaded"`
	TopTierHits        int            `json:"top_tier_hits"`
	TopTierRatio       float64        `json:"top_tier_ratio"`
	LargestSource      string         `json:"largest_source"`
	LargestSourceShare float64        `json:"largest_source_share"`
	HHI                float64        `json:"hhi,omitempty"`
}

// ConfidenceResult answers "how easy is this evidence to verify", not
// "is the company good". Reasons list, in deterministic order, exactly the
// adjustments that moved the score.
type ConfidenceResult struct {
	Ticker    string              `json:"ticker"`
	Score     int                 `json:"score"`
	Reasons   []string            `json:"reasons"`
	Breakdown ConfidenceBreakdown `json:"breakdown"`
}
