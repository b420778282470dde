package scoring

import (
	"fmt"
	"sort"
	"strings"

	"EquityPulse/internal/domain/models"
	"EquityPulse/internal/news"
)

// ConfidencePreset selects one of the two scoring constant sets. The source
// material disagreed on the baseline (20 vs 50) and bonus magnitudes, so
// both live here as named strategies instead of one guessed blend.
type ConfidencePreset string

const (
	// PresetEvidence: base 20, big tiered adjustments, top-source-share
	// concentration penalty. Default.
	PresetEvidence ConfidencePreset = "evidence"
	// PresetVeracity: base 50, smaller adjustments, Herfindahl (HHI)
	// concentration penalty and a volume bonus.
	PresetVeracity ConfidencePreset = "veracity"
)

// ConfidenceScorer scores how verifiable and diversified the evidence corpus
// is: URL coverage, regulatory-source presence, allow-listed domain share and
// source concentration. Entirely independent of the decision score.
type ConfidenceScorer struct {
	preset ConfidencePreset
	wl     *news.Whitelist
}

func NewConfidenceScorer(preset ConfidencePreset, wl *news.Whitelist) *ConfidenceScorer {
	if preset == "" {
		preset = PresetEvidence
	}
	return &ConfidenceScorer{preset: preset, wl: wl}
}

// Score evaluates the ticker's corpus. An empty corpus scores 0 with a
// reason, never an error.
func (c *ConfidenceScorer) Score(ticker string, corpus []models.NewsRecord) models.ConfidenceResult {
	ticker = strings.ToUpper(ticker)
	res := models.ConfidenceResult{
		Ticker:    ticker,
		Breakdown: models.ConfidenceBreakdown{SourceCounts: map[string]int{}},
	}

	var rows []models.NewsRecord
	for _, r := range corpus {
		if strings.EqualFold(r.Ticker, ticker) {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		res.Reasons = []string{fmt.Sprintf("No news evidence rows for %s.", ticker)}
		return res
	}

	b := &res.Breakdown
	b.TotalRows = len(rows)
	b.WhitelistLoaded = c.wl.Len() > 0

	hasURL := 0
	for _, r := range rows {
		src := strings.ToLower(strings.TrimSpace(r.Source))
		if src == "" {
			src = "unknown"
		}
		b.SourceCounts[src]++
		if strings.HasPrefix(r.URL, "http") {
			hasURL++
		}
		if src == "sec" {
			b.SECRows++
		}
		if c.wl.Contains(news.ExtractDomain(r.URL)) {
			b.TopTierHits++
		}
	}
	total := float64(b.TotalRows)
	b.URLRatio = float64(hasURL) / total
	b.TopTierRatio = float64(b.TopTierHits) / total

	// Largest source deterministically: count desc, then name asc.
	names := make([]string, 0, len(b.SourceCounts))
	for s := range b.SourceCounts {
		names = append(names, s)
	}
	sort.Slice(names, func(i, j int) bool {
		if b.SourceCounts[names[i]] != b.SourceCounts[names[j]] {
			return b.SourceCounts[names[i]] > b.SourceCounts[names[j]]
		}
		return names[i] < names[j]
	})
	b.LargestSource = names[0]
	b.LargestSourceShare = float64(b.SourceCounts[names[0]]) / total

	hhi := 0.0
	for _, n := range b.SourceCounts {
		share := float64(n) / total
		hhi += share * share
	}
	b.HHI = hhi

	switch c.preset {
	case PresetVeracity:
		res.Score, res.Reasons = c.scoreVeracity(b)
	default:
		res.Score, res.Reasons = c.scoreEvidence(b)
	}

	res.Reasons = append([]string{fmt.Sprintf(
		"Evidence rows=%d, URL coverage=%.0f%%, top source=%s (%.0f%%).",
		b.TotalRows, b.URLRatio*100, b.LargestSource, b.LargestSourceShare*100)}, res.Reasons...)
	return res
}

func (c *ConfidenceScorer) scoreEvidence(b *models.ConfidenceBreakdown) (int, []string) {
	score := 20
	var reasons []string
	say := func(s string) { reasons = append(reasons, s) }

	switch {
	case b.URLRatio >= 0.90:
		score += 25
		say("Most evidence rows have clickable URLs (easy to verify).")
	case b.URLRatio >= 0.60:
		score += 18
		say("Many evidence rows have clickable URLs.")
	case b.URLRatio >= 0.30:
		score += 10
		say("Some evidence rows have URLs, but many are not directly verifiable by click.")
	default:
		say("Few evidence rows have URLs (hard to verify quickly).")
	}

	secRatio := float64(b.SECRows) / float64(b.TotalRows)
	switch {
	case secRatio >= 0.05:
		score += 15
		say("SEC filings included (high-veracity sources).")
	case b.SECRows > 0:
		score += 10
		say("Some SEC filings included.")
	}

	if b.WhitelistLoaded {
		switch {
		case b.TopTierRatio >= 0.30:
			score += 20
			say("A meaningful share of articles come from the top-tier domain whitelist.")
		case b.TopTierRatio >= 0.10:
			score += 12
			say("Some articles come from the top-tier domain whitelist.")
		default:
			score += 4
			say("Few articles match the top-tier whitelist (weaker verifiability).")
		}
	} else {
		say("No whitelist loaded; confidence uses source mix + URL coverage only.")
	}

	switch {
	case b.LargestSourceShare >= 0.90:
		score -= 20
		say(fmt.Sprintf("Single-source bias: ~%.0f%% from %s.", b.LargestSourceShare*100, b.LargestSource))
	case b.LargestSourceShare >= 0.75:
		score -= 10
		say(fmt.Sprintf("Source concentration: ~%.0f%% from %s.", b.LargestSourceShare*100, b.LargestSource))
	default:
		score += 5
		say("Evidence is reasonably diversified across sources.")
	}

	return clampInt(score, 0, 100), reasons
}

func (c *ConfidenceScorer) scoreVeracity(b *models.ConfidenceBreakdown) (int, []string) {
	score := 50
	var reasons []string
	say := func(s string) { reasons = append(reasons, s) }

	switch {
	case b.URLRatio >= 0.95:
		score += 10
		say("URL coverage is near-complete.")
	case b.URLRatio >= 0.80:
		score += 5
		say("URL coverage is good.")
	default:
		score -= 10
		say("URL coverage is weak.")
	}

	switch {
	case b.HHI >= 0.85:
		score -= 18
		say(fmt.Sprintf("Source concentration is extreme (HHI %.2f).", b.HHI))
	case b.HHI >= 0.60:
		score -= 10
		say(fmt.Sprintf("Source concentration is high (HHI %.2f).", b.HHI))
	case b.HHI >= 0.40:
		score -= 4
		say(fmt.Sprintf("Source concentration is moderate (HHI %.2f).", b.HHI))
	default:
		score += 6
		say("Sources are well diversified.")
	}

	switch {
	case b.TopTierRatio >= 0.25:
		score += 10
		say("Strong top-tier domain coverage.")
	case b.TopTierRatio >= 0.10:
		score += 6
		say("Some top-tier domain coverage.")
	case b.TopTierRatio >= 0.03:
		score += 2
		say("Thin top-tier domain coverage.")
	default:
		score -= 4
		say("No meaningful top-tier domain coverage.")
	}

	if b.SECRows > 0 {
		score += 6
		say("SEC filings present.")
	}

	switch {
	case b.TotalRows >= 300:
		score += 4
		say("Large evidence volume.")
	case b.TotalRows >= 100:
		score += 2
		say("Reasonable evidence volume.")
	case b.TotalRows < 20:
		score -= 8
		say("Very small evidence volume.")
	}

	return clampInt(score, 0, 100), reasons
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
