package news

import "testing"

func TestTrustWeightLookup(t *testing.T) {
	table := NewTrustTable(DefaultTrustWeights(), 0)

	if w := table.Weight("sec"); w != 3.0 {
		t.Fatalf("sec weight: got %v", w)
	}
	if w := table.Weight("  Reuters "); w != 2.6 {
		t.Fatalf("case/space insensitivity: got %v", w)
	}
	if w := table.Weight("unknown_blog"); w != DefaultTrustWeight {
		t.Fatalf("unknown source: got %v want %v", w, DefaultTrustWeight)
	}
	if w := table.Weight(""); w != DefaultTrustWeight {
		t.Fatalf("empty source: got %v", w)
	}
}

func TestTrustTableCopiesWeights(t *testing.T) {
	src := map[string]float64{"sec": 3.0}
	table := NewTrustTable(src, 0)
	src["sec"] = 0.1

	if w := table.Weight("sec"); w != 3.0 {
		t.Fatalf("table shares caller map: got %v", w)
	}
}

func TestWhitelistCanonicalization(t *testing.T) {
	wl := NewWhitelist([]string{"WWW.Reuters.com", "sec.gov", "  "})

	if !wl.Contains("reuters.com") {
		t.Fatalf("expected reuters.com allow-listed")
	}
	if !wl.Contains("www.sec.gov") {
		t.Fatalf("expected www.sec.gov allow-listed")
	}
	if wl.Contains("example.com") {
		t.Fatalf("example.com must not be allow-listed")
	}
	if wl.Len() != 2 {
		t.Fatalf("blank entries must be dropped, len=%d", wl.Len())
	}
}

func TestWhitelistNilSafe(t *testing.T) {
	var wl *Whitelist
	if wl.Contains("reuters.com") {
		t.Fatalf("nil whitelist must contain nothing")
	}
	if wl.Len() != 0 {
		t.Fatalf("nil whitelist len: %d", wl.Len())
	}
}

func TestExtractDomain(t *testing.T) {
	if got := ExtractDomain("https://www.reuters.com/markets/story"); got != "reuters.com" {
		t.Fatalf("got %q", got)
	}
	if got := ExtractDomain("ftp://reuters.com/x"); got != "" {
		t.Fatalf("non-http scheme: got %q", got)
	}
	if got := ExtractDomain(""); got != "" {
		t.Fatalf("empty: got %q", got)
	}
}

func TestTrustScoreWhitelistBoost(t *testing.T) {
	table := NewTrustTable(DefaultTrustWeights(), 0)
	wl := NewWhitelist([]string{"reuters.com"})

	base := TrustScore(table, wl, "reuters", "https://example.com/a")
	boosted := TrustScore(table, wl, "reuters", "https://www.reuters.com/a")

	if base != 2.6 {
		t.Fatalf("base score: got %v", base)
	}
	if boosted != 3.1 {
		t.Fatalf("boosted score: got %v", boosted)
	}
}
