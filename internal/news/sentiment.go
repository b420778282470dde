package news

import (
	"sort"
	"strings"

	"EquityPulse/internal/domain/models"
)

// SentimentKeywords drives the proxy score. Independent of the impact
// tagging keywords on purpose: the proxy is a second opinion, not an echo.
type SentimentKeywords struct {
	Positive []string
	Negative []string
}

func DefaultSentimentKeywords() SentimentKeywords {
	return SentimentKeywords{
		Positive: []string{
			"beat", "beats", "record", "profit", "profitable", "surge", "raises", "raise guidance",
			"upgrade", "upgrades", "strong", "growth", "buyback", "expanded", "expands",
		},
		Negative: []string{
			"investigation", "probe", "lawsuit", "sued", "strike", "ban", "regulator", "crash",
			"fatal", "recall", "decline", "miss", "misses", "downgrade", "downgrades",
			"cuts", "cut guidance", "fraud", "settlement",
		},
	}
}

// SentimentProxy computes the keyword-hit proxy per ticker and window:
// clamp(50 + 2*posHits - 3*negCount + shock - negHits, 0, 100).
type SentimentProxy struct {
	words SentimentKeywords
	agg   *Aggregator
}

func NewSentimentProxy(words SentimentKeywords, agg *Aggregator) *SentimentProxy {
	if len(words.Positive)+len(words.Negative) == 0 {
		words = DefaultSentimentKeywords()
	}
	return &SentimentProxy{words: words, agg: agg}
}

func countHits(title string, words []string) int {
	t := strings.ToLower(title)
	n := 0
	for _, w := range words {
		if strings.Contains(t, w) {
			n++
		}
	}
	return n
}

// Rows builds one proxy row per ticker, sorted by ticker for stable output.
func (p *SentimentProxy) Rows(records []models.NewsRecord) []models.SentimentProxyRow {
	byTicker := make(map[string][]models.NewsRecord)
	for _, r := range records {
		t := strings.ToUpper(r.Ticker)
		byTicker[t] = append(byTicker[t], r)
	}

	out := make([]models.SentimentProxyRow, 0, len(byTicker))
	for ticker, recs := range byTicker {
		row := models.SentimentProxyRow{Ticker: ticker}
		a7, n7, s7, p7, nh7, ps7 := p.window(recs, p.agg.daysShort)
		a30, n30, s30, _, _, ps30 := p.window(recs, p.agg.daysLong)

		row.Articles7d, row.Neg7d, row.Shock7d = a7, n7, s7
		row.PosHits7d, row.NegHits7d, row.ProxyScore7d = p7, nh7, ps7
		row.Articles30d, row.Neg30d, row.Shock30d = a30, n30, s30
		row.ProxyScore30 = ps30
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

func (p *SentimentProxy) window(recs []models.NewsRecord, days int) (articles, neg, shock, posHits, negHits, proxy int) {
	for _, r := range recs {
		if !p.agg.inWindow(r, days) {
			continue
		}
		articles++
		if r.ImpactScore < 0 {
			neg++
			shock += r.ImpactScore
		}
		posHits += countHits(r.Title, p.words.Positive)
		negHits += countHits(r.Title, p.words.Negative)
	}
	proxy = clampInt(50+posHits*2-neg*3+shock-negHits, 0, 100)
	return
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
