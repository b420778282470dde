package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"EquityPulse/internal/domain/models"
	domrepo "EquityPulse/internal/domain/repository"
	"EquityPulse/internal/news"
	applogger "EquityPulse/pkg/logger"
)

// NewsPipeline turns raw source output into the scored, deduplicated corpus.
// One broken source degrades coverage but never fails the run; its error is
// carried on the SourceResult instead.
type NewsPipeline struct {
	sources    []domrepo.NewsSource
	normalizer *news.Normalizer
	tagger     *news.Tagger
	dedupe     *news.Deduplicator
	metrics    domrepo.Metrics
	log        *applogger.Logger
	now        func() time.Time
}

func NewNewsPipeline(
	sources []domrepo.NewsSource,
	normalizer *news.Normalizer,
	tagger *news.Tagger,
	dedupe *news.Deduplicator,
	metrics domrepo.Metrics,
	log *applogger.Logger,
) *NewsPipeline {
	return &NewsPipeline{
		sources:    sources,
		normalizer: normalizer,
		tagger:     tagger,
		dedupe:     dedupe,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

// Collect fetches all sources in parallel and returns per-source results in
// source registration order.
func (p *NewsPipeline) Collect(ctx context.Context, ticker string, daysBack int) []models.SourceResult {
	results := make([]models.SourceResult, len(p.sources))

	var wg sync.WaitGroup
	for i, src := range p.sources {
		wg.Add(1)
		go func(i int, src domrepo.NewsSource) {
			defer wg.Done()
			start := time.Now()
			records, err := src.Fetch(ctx, ticker, daysBack)
			p.metrics.RecordLatency("fetch_"+src.Name(), time.Since(start).Seconds())
			if err != nil {
				p.metrics.RecordSourceError(src.Name())
				p.log.Warn("source fetch failed",
					applogger.String("source", src.Name()),
					applogger.String("ticker", ticker),
					applogger.Error(err),
				)
			} else {
				p.metrics.RecordIngested(src.Name(), ticker, len(records))
			}
			results[i] = models.SourceResult{Source: src.Name(), Records: records, Err: err}
		}(i, src)
	}
	wg.Wait()

	return results
}

// Build runs the full corpus build: collect, normalize, tag, dedupe, and
// filter to the lookback window. Output is sorted newest first.
func (p *NewsPipeline) Build(ctx context.Context, ticker string, daysBack int) ([]models.NewsRecord, []models.SourceResult) {
	sourced := p.Collect(ctx, ticker, daysBack)

	var merged []models.NewsRecord
	for _, sr := range sourced {
		merged = append(merged, sr.Records...)
	}

	for i := range merged {
		p.normalizer.Normalize(&merged[i], "")
	}
	p.tagger.Score(merged)

	deduped := p.dedupe.Dedupe(merged)

	cutoff := p.now().UTC().AddDate(0, 0, -daysBack)
	corpus := deduped[:0:0]
	for _, r := range deduped {
		if r.PublishedAt.Before(cutoff) {
			continue
		}
		corpus = append(corpus, r)
	}

	sort.SliceStable(corpus, func(i, j int) bool {
		return corpus[i].PublishedAt.After(corpus[j].PublishedAt)
	})

	p.log.Info("corpus built",
		applogger.String("ticker", ticker),
		applogger.Int("raw", len(merged)),
		applogger.Int("deduped", len(deduped)),
		applogger.Int("in_window", len(corpus)),
	)
	return corpus, sourced
}

// BuildUniverse runs Build for every ticker and merges the corpora, so the
// dashboard, sentiment and evidence views cover peers as well as the primary.
// Source results are folded per source across tickers: record counts sum,
// the first error per source is kept.
func (p *NewsPipeline) BuildUniverse(ctx context.Context, tickers []string, daysBack int) ([]models.NewsRecord, []models.SourceResult) {
	var corpus []models.NewsRecord
	merged := make(map[string]*models.SourceResult, len(p.sources))
	order := make([]string, 0, len(p.sources))

	for _, ticker := range tickers {
		records, sourced := p.Build(ctx, ticker, daysBack)
		corpus = append(corpus, records...)

		for _, sr := range sourced {
			agg, ok := merged[sr.Source]
			if !ok {
				agg = &models.SourceResult{Source: sr.Source}
				merged[sr.Source] = agg
				order = append(order, sr.Source)
			}
			agg.Records = append(agg.Records, sr.Records...)
			if agg.Err == nil {
				agg.Err = sr.Err
			}
		}
	}

	sourced := make([]models.SourceResult, len(order))
	for i, name := range order {
		sourced[i] = *merged[name]
	}
	return corpus, sourced
}
