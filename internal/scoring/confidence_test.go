package scoring

import (
	"fmt"
	"testing"

	"EquityPulse/internal/domain/models"
	"EquityPulse/internal/news"
)

func evidenceCorpus() []models.NewsRecord {
	// 10 rows: 2 sec, 3 reuters, 3 wsj, 2 gdelt; all with URLs; 6 of 10 on
	// allow-listed domains.
	var out []models.NewsRecord
	add := func(n int, source, domain string) {
		for i := 0; i < n; i++ {
			out = append(out, models.NewsRecord{
				Ticker: "UBER", Source: source,
				URL: fmt.Sprintf("https://%s/%s/%d", domain, source, i),
			})
		}
	}
	add(2, "sec", "sec.gov")
	add(3, "reuters", "reuters.com")
	add(3, "wsj", "wsj.com")
	add(2, "gdelt", "randomblog.example")
	return out
}

func TestConfidenceEvidencePreset(t *testing.T) {
	wl := news.NewWhitelist([]string{"sec.gov", "reuters.com", "wsj.com"})
	c := NewConfidenceScorer(PresetEvidence, wl)

	res := c.Score("uber", evidenceCorpus())

	// base 20 + URL 25 + SEC 15 + whitelist 20 + diversified 5 = 85.
	if res.Score != 85 {
		t.Fatalf("got %d", res.Score)
	}
	b := res.Breakdown
	if b.TotalRows != 10 || b.SECRows != 2 || b.TopTierHits != 8 {
		t.Fatalf("breakdown: %+v", b)
	}
	if b.LargestSource != "reuters" || b.LargestSourceShare != 0.3 {
		t.Fatalf("largest source: %s %.2f", b.LargestSource, b.LargestSourceShare)
	}
	if len(res.Reasons) == 0 {
		t.Fatalf("expected reasons")
	}
}

func TestConfidenceConcentrationPenalty(t *testing.T) {
	wl := news.NewWhitelist(nil)
	c := NewConfidenceScorer(PresetEvidence, wl)

	var corpus []models.NewsRecord
	for i := 0; i < 19; i++ {
		corpus = append(corpus, models.NewsRecord{
			Ticker: "UBER", Source: "gdelt", URL: fmt.Sprintf("https://blog.example/%d", i),
		})
	}
	corpus = append(corpus, models.NewsRecord{Ticker: "UBER", Source: "fmp", URL: "https://x.example/1"})

	res := c.Score("UBER", corpus)
	// base 20 + URL 25 - single-source 20 = 25 (no whitelist loaded).
	if res.Score != 25 {
		t.Fatalf("got %d", res.Score)
	}
}

func TestConfidenceVeracityPreset(t *testing.T) {
	wl := news.NewWhitelist([]string{"sec.gov", "reuters.com", "wsj.com"})
	c := NewConfidenceScorer(PresetVeracity, wl)

	res := c.Score("UBER", evidenceCorpus())

	// HHI = 0.04 + 0.09 + 0.09 + 0.04 = 0.26 -> diversified.
	// base 50 + URL 10 + diversified 6 + top tier 10 + SEC 6 - small volume 8 = 74.
	if res.Score != 74 {
		t.Fatalf("got %d", res.Score)
	}
	if hhi := res.Breakdown.HHI; hhi < 0.259 || hhi > 0.261 {
		t.Fatalf("hhi: %v", hhi)
	}
}

func TestConfidenceEmptyCorpus(t *testing.T) {
	c := NewConfidenceScorer(PresetEvidence, news.NewWhitelist(nil))

	res := c.Score("UBER", []models.NewsRecord{{Ticker: "LYFT", Source: "sec"}})
	if res.Score != 0 {
		t.Fatalf("got %d", res.Score)
	}
	if len(res.Reasons) != 1 {
		t.Fatalf("reasons: %v", res.Reasons)
	}
}
