package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	domrepo "EquityPulse/internal/domain/repository"
	"EquityPulse/internal/handler/api"
	"EquityPulse/internal/news"
	internalrepo "EquityPulse/internal/repository"
	"EquityPulse/internal/scoring"
	"EquityPulse/internal/service/fundamentals"
	"EquityPulse/internal/service/sources"
	"EquityPulse/internal/usecase"
	"EquityPulse/pkg/cache"
	pkgch "EquityPulse/pkg/clickhouse"
	"EquityPulse/pkg/config"
	xhttp "EquityPulse/pkg/http"
	pkgkafka "EquityPulse/pkg/kafka"
	applogger "EquityPulse/pkg/logger"
	"EquityPulse/pkg/metrics"
	"EquityPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideHTTPClient creates the shared outbound HTTP client with the bounded
// retry policy all REST sources use.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.HTTP.Timeout),
		xhttp.WithRetry(cfg.HTTP.RetryAttempts, cfg.HTTP.RetryBackoff),
		xhttp.WithUserAgent(cfg.SEC.UserAgent),
	)
}

// ProvideCache creates the cache service: layered memory+Redis when Redis is
// enabled, memory-only otherwise.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.Service {
	memOpts := []cache.MemoryOption{
		cache.WithMaxSize(cfg.Cache.MemoryMaxSize),
		cache.WithDefaultTTL(cfg.Cache.TTL),
	}
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(memOpts...)
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithAddr(cfg.Cache.Redis.Addr),
		cache.WithPassword(cfg.Cache.Redis.Password),
		cache.WithDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		l.Warn("redis unavailable, using memory cache only", applogger.Error(err))
		return cache.NewMemoryCache(memOpts...)
	}
	return cache.NewLayeredCache(redisCache, memOpts...)
}

// ProvideSymbolCache creates the ticker-to-CIK cache.
func ProvideSymbolCache(c cache.Service) domrepo.SymbolCache {
	return internalrepo.NewCachedSymbolCache(c)
}

// ProvideCorpusStore creates the ClickHouse corpus store, or nil when
// persistence is disabled.
func ProvideCorpusStore(cfg *config.Config, l *applogger.Logger) (domrepo.CorpusStore, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	store := internalrepo.NewCHCorpusStore(client, l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideDecisionPublisher creates the Kafka publisher for finished runs, or
// nil when no publish topic is configured.
func ProvideDecisionPublisher(cfg *config.Config) (domrepo.DecisionPublisher, error) {
	if !cfg.Bus.Enabled || cfg.Bus.PublishTopic == "" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(pkgkafka.WithProducerBrokers(cfg.Bus.Brokers))
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaDecisionPublisher(producer, cfg.Bus.PublishTopic), nil
}

// sourceEnabled reports whether name passes news.enabled_sources. An empty
// list means every configured source runs.
func sourceEnabled(cfg *config.Config, name string) bool {
	if len(cfg.News.EnabledSources) == 0 {
		return true
	}
	for _, s := range cfg.News.EnabledSources {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// ProvideSources assembles the enabled news sources in trust order.
func ProvideSources(cfg *config.Config, client *xhttp.Client, symbols domrepo.SymbolCache, l *applogger.Logger) ([]domrepo.NewsSource, error) {
	var out []domrepo.NewsSource

	if cfg.SEC.Enabled && sourceEnabled(cfg, "sec") {
		out = append(out, sources.NewSECSource(client, symbols, l, cfg.SEC.MaxItems))
	}
	if cfg.Finnhub.Enabled && cfg.Finnhub.APIKey != "" && sourceEnabled(cfg, "finnhub") {
		out = append(out, sources.NewFinnhubSource(client, cfg.Finnhub.BaseURL, cfg.Finnhub.APIKey, cfg.Finnhub.MaxItems))
	}
	if cfg.FMP.Enabled && cfg.FMP.APIKey != "" && sourceEnabled(cfg, "fmp") {
		out = append(out, sources.NewFMPNewsSource(client, cfg.FMP.APIKey, l, cfg.FMP.MaxItems))
	}
	if cfg.GDELT.Enabled && sourceEnabled(cfg, "gdelt") {
		out = append(out, sources.NewGDELTSource(client, cfg.GDELT.BaseURL, cfg.GDELT.MaxItems))
	}
	if len(cfg.RSS.Feeds) > 0 && sourceEnabled(cfg, "ir_rss") {
		feeds := make([]sources.RSSFeed, 0, len(cfg.RSS.Feeds))
		for _, f := range cfg.RSS.Feeds {
			feeds = append(feeds, sources.RSSFeed{URL: f.URL, Source: f.Source, Ticker: f.Ticker})
		}
		out = append(out, sources.NewRSSSource(client, feeds, 0))
	}
	if cfg.Bus.Enabled && cfg.Bus.Topic != "" && sourceEnabled(cfg, "bus") {
		reader, err := pkgkafka.NewReader(
			pkgkafka.WithReaderBrokers(cfg.Bus.Brokers),
			pkgkafka.WithReaderTopic(cfg.Bus.Topic),
			pkgkafka.WithReaderGroupID(cfg.Bus.GroupID),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka reader: %w", err)
		}
		out = append(out, sources.NewBusSource(reader, l, cfg.Bus.MaxRecords, cfg.Bus.DrainTimeout))
	}
	if cfg.Newswire.Enabled && cfg.Newswire.URL != "" && sourceEnabled(cfg, "newswire") {
		out = append(out, sources.NewNewswireSource(
			cfg.Newswire.URL, cfg.Newswire.APIKey,
			cfg.Newswire.DrainWindow, cfg.Newswire.PingInterval, l,
		))
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no news sources enabled")
	}
	return out, nil
}

// ProvideTrustTable builds the source trust table, with config overrides on
// top of the defaults.
func ProvideTrustTable(cfg *config.Config) *news.TrustTable {
	weights := news.DefaultTrustWeights()
	for source, w := range cfg.News.TrustWeights {
		weights[source] = w
	}
	return news.NewTrustTable(weights, cfg.News.DefaultWeight)
}

// ProvideWhitelist builds the credibility whitelist from config.
func ProvideWhitelist(cfg *config.Config) *news.Whitelist {
	return news.NewWhitelist(cfg.News.WhitelistDomains)
}

// ProvideNormalizer builds the record normalizer with the configured
// timestamp fallback policy.
func ProvideNormalizer(cfg *config.Config) *news.Normalizer {
	return news.NewNormalizer(news.NormalizerConfig{
		Fallback: news.TimestampFallback(cfg.News.TimestampFallback),
	})
}

// ProvideTagger builds the risk tagger with default rules.
func ProvideTagger() *news.Tagger {
	return news.NewTagger(news.DefaultTagRules(), news.DefaultImpactKeywords())
}

// ProvideDeduplicator builds the deduplicator with the configured policy.
func ProvideDeduplicator(cfg *config.Config, trust *news.TrustTable, wl *news.Whitelist) *news.Deduplicator {
	return news.NewDeduplicator(news.DedupePolicy(cfg.News.DedupePolicy), trust, wl)
}

// ProvideConfirmer builds the multi-source confirmation checker.
func ProvideConfirmer(cfg *config.Config, trust *news.TrustTable) *news.Confirmer {
	return news.NewConfirmer(news.ConfirmConfig{
		MinConfirmations:     cfg.News.Confirm.MinConfirmations,
		CredibilityThreshold: cfg.News.Confirm.CredibilityThreshold,
	}, trust)
}

// ProvideAggregator builds the window aggregator.
func ProvideAggregator(cfg *config.Config) *news.Aggregator {
	return news.NewAggregator(news.WindowConfig{
		DaysShort: cfg.News.DaysShort,
		DaysLong:  cfg.News.DaysLong,
	})
}

// ProvideSentimentProxy builds the keyword sentiment proxy.
func ProvideSentimentProxy(agg *news.Aggregator) *news.SentimentProxy {
	return news.NewSentimentProxy(news.DefaultSentimentKeywords(), agg)
}

// ProvideDecisionScorer builds the composite decision scorer.
func ProvideDecisionScorer() *scoring.DecisionScorer {
	return scoring.NewDecisionScorer(nil)
}

// ProvideConfidenceScorer builds the evidence confidence scorer.
func ProvideConfidenceScorer(cfg *config.Config, wl *news.Whitelist) *scoring.ConfidenceScorer {
	return scoring.NewConfidenceScorer(scoring.ConfidencePreset(cfg.News.ConfidencePreset), wl)
}

// ProvideFundamentals creates the FMP fundamentals provider.
func ProvideFundamentals(cfg *config.Config, client *xhttp.Client) domrepo.FundamentalsProvider {
	return fundamentals.NewFMPProvider(client, cfg.FMP.BaseURL, cfg.FMP.APIKey)
}

// ProvidePipeline assembles the corpus build pipeline.
func ProvidePipeline(
	srcs []domrepo.NewsSource,
	normalizer *news.Normalizer,
	tagger *news.Tagger,
	dedupe *news.Deduplicator,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.NewsPipeline {
	return usecase.NewNewsPipeline(srcs, normalizer, tagger, dedupe, m, l)
}

// ProvideResearch assembles the run orchestrator.
func ProvideResearch(
	cfg *config.Config,
	pipeline *usecase.NewsPipeline,
	provider domrepo.FundamentalsProvider,
	store domrepo.CorpusStore,
	publisher domrepo.DecisionPublisher,
	agg *news.Aggregator,
	sentiment *news.SentimentProxy,
	confirmer *news.Confirmer,
	decision *scoring.DecisionScorer,
	confidence *scoring.ConfidenceScorer,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.Research {
	return usecase.NewResearch(usecase.ResearchDeps{
		Pipeline:     pipeline,
		Fundamentals: provider,
		Store:        store,
		Publisher:    publisher,
		Aggregator:   agg,
		Sentiment:    sentiment,
		Confirmer:    confirmer,
		Decision:     decision,
		Confidence:   confidence,
		Metrics:      m,
		Log:          l,
		Primary:      cfg.Primary,
		Peers:        cfg.Peers,
	})
}

// ProvideHandler creates the HTTP handler over the research usecase.
func ProvideHandler(l *applogger.Logger, research *usecase.Research, store domrepo.CorpusStore) *api.ResearchEchoHandler {
	return api.NewResearchEchoHandler(l, research, store)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	research *usecase.Research,
	handler *api.ResearchEchoHandler,
	store domrepo.CorpusStore,
	publisher domrepo.DecisionPublisher,
) *server.App {
	return server.New(cfg, l, research, handler, store, publisher)
}
