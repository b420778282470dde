package repository

import (
	"context"
	"time"

	"EquityPulse/internal/domain/models"
)

// NewsSource fetches raw news records for a ticker. Implementations cover
// SEC submissions, vendor REST APIs, GDELT, RSS feeds, and bus drains.
type NewsSource interface {
	Name() string
	Fetch(ctx context.Context, ticker string, daysBack int) ([]models.NewsRecord, error)
}

// CorpusStore persists the normalized news corpus and scored run results.
type CorpusStore interface {
	Init(ctx context.Context) error
	StoreRecords(ctx context.Context, records []models.NewsRecord) error
	QueryRecords(ctx context.Context, ticker string, from, to time.Time, limit int) ([]models.NewsRecord, error)
	StoreDecision(ctx context.Context, result *models.DecisionResult) error
	Health(ctx context.Context) error
	Close() error
}

// DecisionPublisher pushes finished run results onto the bus.
type DecisionPublisher interface {
	Publish(ctx context.Context, result *models.DecisionResult) error
	Close() error
}

// SymbolCache resolves ticker symbols to SEC CIK identifiers.
type SymbolCache interface {
	CIK(ctx context.Context, ticker string) (string, bool)
	StoreCIK(ctx context.Context, ticker, cik string)
}

// FundamentalsProvider fetches statements and quotes for scoring.
type FundamentalsProvider interface {
	QuarterlyHistory(ctx context.Context, ticker string, quarters int) ([]models.FundamentalsPeriod, error)
	AnnualHistory(ctx context.Context, ticker string, years int) ([]models.FundamentalsPeriod, error)
	Quote(ctx context.Context, ticker string) (*models.Quote, error)
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordIngested(source, ticker string, count int)
	RecordSourceError(source string)
	RecordDecisionScore(ticker string, score float64)
	RecordConfidenceScore(ticker string, score float64)
	RecordLatency(op string, seconds float64)
}
