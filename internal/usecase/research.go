package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
	domrepo "EquityPulse/internal/domain/repository"
	"EquityPulse/internal/news"
	"EquityPulse/internal/scoring"
	"EquityPulse/internal/service/fundamentals"
	applogger "EquityPulse/pkg/logger"
)

const (
	quartersBack = 40
	yearsBack    = 12
)

// ResearchOutput is everything one run produces: the decision, the
// independent confidence verdict, and the intermediate views renderers need.
type ResearchOutput struct {
	Decision      models.DecisionResult                  `json:"decision"`
	Confidence    models.ConfidenceResult                `json:"confidence"`
	Card          models.DecisionCard                    `json:"card"`
	Corpus        []models.NewsRecord                    `json:"corpus"`
	Dashboard     []models.RiskAggregateRow              `json:"dashboard"`
	Proxy         []models.SentimentProxyRow             `json:"sentiment_proxy"`
	Confirmations map[models.RiskTag]models.Confirmation `json:"confirmations"`
	Evidence      []models.EvidenceRow                   `json:"evidence"`
	SourceStats   []SourceStat                           `json:"source_stats"`
}

// SourceStat summarizes one source's contribution to the run.
type SourceStat struct {
	Source  string `json:"source"`
	Records int    `json:"records"`
	Failed  bool   `json:"failed"`
	Error   string `json:"error,omitempty"`
}

// Research orchestrates a full run: corpus build, fundamentals, scoring,
// persistence, and publication.
type Research struct {
	pipeline     *NewsPipeline
	fundamentals domrepo.FundamentalsProvider
	store        domrepo.CorpusStore
	publisher    domrepo.DecisionPublisher
	aggregator   *news.Aggregator
	sentiment    *news.SentimentProxy
	confirmer    *news.Confirmer
	decision     *scoring.DecisionScorer
	confidence   *scoring.ConfidenceScorer
	metrics      domrepo.Metrics
	log          *applogger.Logger

	primary string
	peers   []string
}

// ResearchDeps bundles the constructor arguments; the DI layer fills it.
type ResearchDeps struct {
	Pipeline     *NewsPipeline
	Fundamentals domrepo.FundamentalsProvider
	Store        domrepo.CorpusStore
	Publisher    domrepo.DecisionPublisher
	Aggregator   *news.Aggregator
	Sentiment    *news.SentimentProxy
	Confirmer    *news.Confirmer
	Decision     *scoring.DecisionScorer
	Confidence   *scoring.ConfidenceScorer
	Metrics      domrepo.Metrics
	Log          *applogger.Logger
	Primary      string
	Peers        []string
}

func NewResearch(deps ResearchDeps) *Research {
	return &Research{
		pipeline:     deps.Pipeline,
		fundamentals: deps.Fundamentals,
		store:        deps.Store,
		publisher:    deps.Publisher,
		aggregator:   deps.Aggregator,
		sentiment:    deps.Sentiment,
		confirmer:    deps.Confirmer,
		decision:     deps.Decision,
		confidence:   deps.Confidence,
		metrics:      deps.Metrics,
		log:          deps.Log,
		primary:      strings.ToUpper(deps.Primary),
		peers:        upperAll(deps.Peers),
	}
}

// Run executes one full research pass for the primary ticker.
func (r *Research) Run(ctx context.Context, daysBack int) (*ResearchOutput, error) {
	start := time.Now()

	universe := append([]string{r.primary}, r.peers...)
	corpus, sourced := r.pipeline.BuildUniverse(ctx, universe, daysBack)

	if r.store != nil && len(corpus) > 0 {
		if err := r.store.StoreRecords(ctx, corpus); err != nil {
			r.log.Warn("corpus persistence failed", applogger.Error(err))
		}
	}

	comps, annualHist, err := r.buildFundamentals(ctx)
	if err != nil {
		return nil, err
	}

	summary := r.aggregator.Summarize(corpus, r.primary)
	dashboard := r.aggregator.Dashboard(corpus)
	proxyRows := r.sentiment.Rows(corpus)
	confirmations := r.confirmer.Confirmed(corpus)
	evidence := r.aggregator.EvidenceTable(corpus, r.primary, 30, 0)

	var proxyRow *models.SentimentProxyRow
	for i := range proxyRows {
		if proxyRows[i].Ticker == r.primary {
			proxyRow = &proxyRows[i]
			break
		}
	}

	result := r.decision.Score(r.primary, comps, summary, proxyRow)

	var primaryComps *models.CompsRow
	for i := range comps {
		if comps[i].Ticker == r.primary {
			primaryComps = &comps[i]
			break
		}
	}
	extraFlags := scoring.RedFlags(scoring.RedFlagInputs{
		Ticker:     r.primary,
		AnnualHist: annualHist,
		CompsRow:   primaryComps,
		ProxyRow:   proxyRow,
		Dashboard:  dashboard,
	})
	result.RedFlags = scoring.MergeFlags(extraFlags, result.RedFlags)

	result.Completeness, result.CompletenessMissing = scoring.Completeness(scoring.CompletenessInputs{
		Ticker:     r.primary,
		Comps:      comps,
		AnnualHist: annualHist,
		Corpus:     corpus,
		Proxy:      proxyRows,
		Dashboard:  dashboard,
	})
	result.Scenarios = scoring.Scenarios(primaryComps)

	conf := r.confidence.Score(r.primary, corpus)

	r.metrics.RecordDecisionScore(r.primary, float64(result.Score))
	r.metrics.RecordConfidenceScore(r.primary, float64(conf.Score))
	r.metrics.RecordLatency("research_run", time.Since(start).Seconds())

	if r.store != nil {
		if err := r.store.StoreDecision(ctx, &result); err != nil {
			r.log.Warn("decision persistence failed", applogger.Error(err))
		}
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, &result); err != nil {
			r.log.Warn("decision publish failed", applogger.Error(err))
		}
	}

	r.log.Info("research run complete",
		applogger.String("ticker", r.primary),
		applogger.Int("score", result.Score),
		applogger.String("rating", result.Rating),
		applogger.Int("confidence", conf.Score),
		applogger.Duration("duration", time.Since(start)),
	)

	return &ResearchOutput{
		Decision:      result,
		Confidence:    conf,
		Card:          models.BuildCard(&result, conf.Score),
		Corpus:        corpus,
		Dashboard:     dashboard,
		Proxy:         proxyRows,
		Confirmations: confirmations,
		Evidence:      evidence,
		SourceStats:   sourceStats(sourced),
	}, nil
}

// buildFundamentals assembles the peer comps table and the primary ticker's
// annual history. A failing peer is skipped; a failing primary is fatal.
func (r *Research) buildFundamentals(ctx context.Context) ([]models.CompsRow, []models.FundamentalsPeriod, error) {
	universe := append([]string{r.primary}, r.peers...)

	latestTTM := make(map[string]models.TTMRow, len(universe))
	quotes := make(map[string]models.Quote, len(universe))

	for _, ticker := range universe {
		qhist, err := r.fundamentals.QuarterlyHistory(ctx, ticker, quartersBack)
		if err != nil {
			if ticker == r.primary {
				return nil, nil, fmt.Errorf("fundamentals for primary %s: %w", ticker, err)
			}
			r.log.Warn("peer fundamentals failed, skipping",
				applogger.String("ticker", ticker),
				applogger.Error(err),
			)
			continue
		}
		ttm := fundamentals.BuildTTM(qhist)
		if len(ttm) == 0 {
			continue
		}
		latestTTM[ticker] = ttm[0]

		quote, err := r.fundamentals.Quote(ctx, ticker)
		if err != nil {
			r.log.Warn("quote failed",
				applogger.String("ticker", ticker),
				applogger.Error(err),
			)
		} else {
			quotes[ticker] = *quote
		}
	}

	if _, ok := latestTTM[r.primary]; !ok {
		return nil, nil, fmt.Errorf("no TTM data for primary %s", r.primary)
	}

	annualHist, err := r.fundamentals.AnnualHistory(ctx, r.primary, yearsBack)
	if err != nil {
		r.log.Warn("annual history failed",
			applogger.String("ticker", r.primary),
			applogger.Error(err),
		)
		annualHist = nil
	}

	return fundamentals.BuildComps(latestTTM, quotes), annualHist, nil
}

func sourceStats(sourced []models.SourceResult) []SourceStat {
	stats := make([]SourceStat, 0, len(sourced))
	for _, sr := range sourced {
		stat := SourceStat{Source: sr.Source, Records: len(sr.Records)}
		if sr.Err != nil {
			stat.Failed = true
			stat.Error = sr.Err.Error()
		}
		stats = append(stats, stat)
	}
	return stats
}

func upperAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
