package news

import (
	"net/url"
	"strings"
)

// TrustTable maps lowercased source identifiers to credibility weights.
// Higher = more trustworthy / less noisy. Immutable after construction.
type TrustTable struct {
	weights       map[string]float64
	defaultWeight float64
}

// DefaultTrustWeights keeps the high-quality tier short and conservative:
// regulatory filings above wire services above aggregators.
func DefaultTrustWeights() map[string]float64 {
	return map[string]float64{
		"sec":       3.0,
		"reuters":   2.6,
		"bloomberg": 2.6,
		"wsj":       2.3,
		"ft":        2.3,
		"cnbc":      1.6,
		"ir_rss":    1.2,
		"finnhub":   0.7,
		"fmp":       0.7,
		"gdelt":     0.4,
	}
}

// DefaultTrustWeight applies to sources missing from the table.
const DefaultTrustWeight = 0.6

// NewTrustTable copies weights so callers cannot mutate the table later.
func NewTrustTable(weights map[string]float64, defaultWeight float64) *TrustTable {
	w := make(map[string]float64, len(weights))
	for k, v := range weights {
		w[strings.ToLower(strings.TrimSpace(k))] = v
	}
	if defaultWeight <= 0 {
		defaultWeight = DefaultTrustWeight
	}
	return &TrustTable{weights: w, defaultWeight: defaultWeight}
}

// Weight looks up the credibility weight for a source name.
func (t *TrustTable) Weight(source string) float64 {
	s := strings.ToLower(strings.TrimSpace(source))
	if s == "" {
		return t.defaultWeight
	}
	if w, ok := t.weights[s]; ok {
		return w
	}
	return t.defaultWeight
}

// Whitelist is the editable domain allow-list shared by trust-boosted
// deduplication and confidence scoring. Domains are stored lowercased with
// any leading "www." stripped.
type Whitelist struct {
	domains map[string]struct{}
}

func NewWhitelist(domains []string) *Whitelist {
	m := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = canonicalDomain(d)
		if d != "" {
			m[d] = struct{}{}
		}
	}
	return &Whitelist{domains: m}
}

// Contains reports whether domain is allow-listed.
func (w *Whitelist) Contains(domain string) bool {
	if w == nil {
		return false
	}
	_, ok := w.domains[canonicalDomain(domain)]
	return ok
}

// Len returns the number of allow-listed domains.
func (w *Whitelist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.domains)
}

func canonicalDomain(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	return strings.TrimPrefix(d, "www.")
}

// ExtractDomain pulls the registrable host out of a URL, or "" when the
// value is not an http(s) URL.
func ExtractDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return canonicalDomain(u.Hostname())
}

// whitelistBoost is added to a record's trust score when its URL domain is
// allow-listed. Used only by the highest-trust dedupe policy.
const whitelistBoost = 0.5

// TrustScore is the per-record score the highest-trust dedupe policy ranks
// by: source weight plus the whitelist boost.
func TrustScore(table *TrustTable, wl *Whitelist, source, rawURL string) float64 {
	score := table.Weight(source)
	if wl.Contains(ExtractDomain(rawURL)) {
		score += whitelistBoost
	}
	return score
}
