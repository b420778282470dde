//go:build wireinject
// +build wireinject

package di

import (
	"EquityPulse/pkg/config"
	"EquityPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideHTTPClient,
		ProvideCache,
		ProvideSymbolCache,
		ProvideCorpusStore,
		ProvideDecisionPublisher,

		// News engine
		ProvideSources,
		ProvideTrustTable,
		ProvideWhitelist,
		ProvideNormalizer,
		ProvideTagger,
		ProvideDeduplicator,
		ProvideConfirmer,
		ProvideAggregator,
		ProvideSentimentProxy,

		// Scoring
		ProvideDecisionScorer,
		ProvideConfidenceScorer,
		ProvideFundamentals,

		// Use cases
		ProvidePipeline,
		ProvideResearch,

		// Application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
