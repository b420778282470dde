package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"EquityPulse/internal/domain/models"
	domrepo "EquityPulse/internal/domain/repository"
	"EquityPulse/internal/news"
	"EquityPulse/pkg/logger"
)

type fakeSource struct {
	name    string
	records []models.NewsRecord
	err     error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, _ string, _ int) ([]models.NewsRecord, error) {
	return f.records, f.err
}

type fakeMetrics struct {
	mu     sync.Mutex
	errors []string
}

func (m *fakeMetrics) RecordIngested(string, string, int)    {}
func (m *fakeMetrics) RecordDecisionScore(string, float64)   {}
func (m *fakeMetrics) RecordConfidenceScore(string, float64) {}
func (m *fakeMetrics) RecordLatency(string, float64)         {}

func (m *fakeMetrics) RecordSourceError(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, source)
}

func newTestPipeline(metrics *fakeMetrics, sources ...*fakeSource) *NewsPipeline {
	srcs := make([]domrepo.NewsSource, len(sources))
	for i, s := range sources {
		srcs[i] = s
	}

	now := func() time.Time { return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC) }
	p := NewNewsPipeline(
		srcs,
		news.NewNormalizer(news.NormalizerConfig{Fallback: news.FallbackNow, Now: now}),
		news.NewTagger(nil, news.ImpactKeywords{}),
		news.NewDeduplicator(news.FirstSeen, nil, nil),
		metrics,
		logger.Nop(),
	)
	p.now = now
	return p
}

func TestCollectOrderAndDegradation(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	good := &fakeSource{name: "sec", records: []models.NewsRecord{
		{Ticker: "UBER", Title: "10-Q filed", Source: "sec", PublishedAt: now.AddDate(0, 0, -1)},
	}}
	broken := &fakeSource{name: "finnhub", err: errors.New("401 unauthorized")}

	metrics := &fakeMetrics{}
	p := newTestPipeline(metrics, good, broken)

	results := p.Collect(context.Background(), "UBER", 30)
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Source != "sec" || results[1].Source != "finnhub" {
		t.Fatalf("registration order broken: %s, %s", results[0].Source, results[1].Source)
	}
	if results[1].Err == nil {
		t.Fatalf("expected finnhub error carried on result")
	}
	if len(metrics.errors) != 1 || metrics.errors[0] != "finnhub" {
		t.Fatalf("source error metric: %v", metrics.errors)
	}
}

type tickerSource struct {
	name     string
	byTicker map[string][]models.NewsRecord
	failFor  string
}

func (f *tickerSource) Name() string { return f.name }

func (f *tickerSource) Fetch(_ context.Context, ticker string, _ int) ([]models.NewsRecord, error) {
	if f.failFor == ticker {
		return nil, errors.New("429 too many requests")
	}
	return f.byTicker[ticker], nil
}

func TestBuildUniverseCoversPeers(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	sec := &tickerSource{name: "sec", byTicker: map[string][]models.NewsRecord{
		"UBER": {{Ticker: "UBER", Title: "10-Q filed", Source: "sec",
			PublishedAt: now.AddDate(0, 0, -1)}},
		"LYFT": {{Ticker: "LYFT", Title: "Drivers strike over wages", Source: "sec",
			PublishedAt: now.AddDate(0, 0, -2)}},
	}}
	flaky := &tickerSource{name: "finnhub", failFor: "LYFT", byTicker: map[string][]models.NewsRecord{
		"UBER": {{Ticker: "UBER", Title: "Company beats estimates", Source: "finnhub",
			PublishedAt: now.AddDate(0, 0, -3)}},
	}}

	metrics := &fakeMetrics{}
	p := NewNewsPipeline(
		[]domrepo.NewsSource{sec, flaky},
		news.NewNormalizer(news.NormalizerConfig{Fallback: news.FallbackNow, Now: func() time.Time { return now }}),
		news.NewTagger(nil, news.ImpactKeywords{}),
		news.NewDeduplicator(news.FirstSeen, nil, nil),
		metrics,
		logger.Nop(),
	)
	p.now = func() time.Time { return now }

	corpus, sourced := p.BuildUniverse(context.Background(), []string{"UBER", "LYFT"}, 30)

	if len(corpus) != 3 {
		t.Fatalf("got %d corpus records", len(corpus))
	}
	tickers := map[string]int{}
	for _, r := range corpus {
		tickers[r.Ticker]++
	}
	if tickers["UBER"] != 2 || tickers["LYFT"] != 1 {
		t.Fatalf("per-ticker coverage: %v", tickers)
	}

	if len(sourced) != 2 {
		t.Fatalf("got %d folded source results", len(sourced))
	}
	if sourced[0].Source != "sec" || len(sourced[0].Records) != 2 {
		t.Fatalf("sec fold: %s/%d", sourced[0].Source, len(sourced[0].Records))
	}
	if sourced[1].Source != "finnhub" || sourced[1].Err == nil {
		t.Fatalf("finnhub fold must carry the LYFT error")
	}
	if len(sourced[1].Records) != 1 {
		t.Fatalf("finnhub fold: %d records", len(sourced[1].Records))
	}
}

func TestBuildDedupesAndFiltersWindow(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	a := &fakeSource{name: "gdelt", records: []models.NewsRecord{
		{Ticker: "uber", Title: "Drivers strike over wages", Source: "gdelt",
			PublishedAt: now.AddDate(0, 0, -2)},
		{Ticker: "uber", Title: "Old story", Source: "gdelt",
			PublishedAt: now.AddDate(0, 0, -45)},
	}}
	b := &fakeSource{name: "reuters", records: []models.NewsRecord{
		{Ticker: "UBER", Title: "Drivers strike, over wages!", Source: "reuters",
			PublishedAt: now.AddDate(0, 0, -2)},
		{Ticker: "UBER", Title: "Company beats estimates", Source: "reuters",
			PublishedAt: now.AddDate(0, 0, -5)},
	}}

	p := newTestPipeline(&fakeMetrics{}, a, b)
	corpus, sourced := p.Build(context.Background(), "UBER", 30)

	if len(sourced) != 2 {
		t.Fatalf("got %d source results", len(sourced))
	}
	// Duplicate title collapses, the 45-day-old record falls out of window.
	if len(corpus) != 2 {
		t.Fatalf("got %d corpus records", len(corpus))
	}
	// Newest first.
	if corpus[0].Title != "Drivers strike over wages" {
		t.Fatalf("order: %q first", corpus[0].Title)
	}
	if corpus[0].Source != "gdelt" {
		t.Fatalf("first_seen must keep the first source, got %s", corpus[0].Source)
	}
	// Tagging and scoring ran.
	if corpus[0].RiskTag != models.TagLabor || corpus[0].ImpactScore != -3 {
		t.Fatalf("tagging: %s/%d", corpus[0].RiskTag, corpus[0].ImpactScore)
	}
	if corpus[0].DedupeKey == "" {
		t.Fatalf("dedupe key not derived")
	}
}
