package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"EquityPulse/internal/domain/models"
	pkgch "EquityPulse/pkg/clickhouse"
	applogger "EquityPulse/pkg/logger"
)

// CHCorpusStore implements CorpusStore backed by ClickHouse. The corpus table
// keys on the content dedupe key so replayed runs upsert instead of piling up
// duplicates.
type CHCorpusStore struct {
	client *pkgch.Client
	db     *sql.DB
	l      *applogger.Logger
}

func NewCHCorpusStore(ch *pkgch.Client, l *applogger.Logger) *CHCorpusStore {
	return &CHCorpusStore{client: ch, db: ch.DB(), l: l}
}

var corpusSchema = []string{
	`CREATE TABLE IF NOT EXISTS news_corpus (
        dedupe_key    String,
        published_at  DateTime('UTC'),
        ticker        LowCardinality(String),
        title         String,
        source        LowCardinality(String),
        url           String,
        summary       String,
        risk_tag      LowCardinality(String),
        impact_score  Int8,
        time_inferred UInt8,
        ingested_at   DateTime('UTC') DEFAULT now()
    ) ENGINE = ReplacingMergeTree(ingested_at)
    ORDER BY (ticker, dedupe_key)`,
	`CREATE TABLE IF NOT EXISTS decision_runs (
        ticker     LowCardinality(String),
        as_of      DateTime('UTC'),
        score      Int32,
        rating     LowCardinality(String),
        payload    String,
        created_at DateTime('UTC') DEFAULT now()
    ) ENGINE = MergeTree()
    ORDER BY (ticker, as_of)`,
}

// Init ensures the corpus tables exist.
func (s *CHCorpusStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, corpusSchema)
}

// StoreRecords batch-inserts normalized records.
func (s *CHCorpusStore) StoreRecords(ctx context.Context, records []models.NewsRecord) error {
	if len(records) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin corpus insert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO news_corpus
        (dedupe_key, published_at, ticker, title, source, url, summary, risk_tag, impact_score, time_inferred)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare corpus insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		inferred := uint8(0)
		if r.TimeInferred {
			inferred = 1
		}
		if _, err := stmt.ExecContext(ctx,
			r.DedupeKey, r.PublishedAt, r.Ticker, r.Title, r.Source,
			r.URL, r.Summary, string(r.RiskTag), int8(r.ImpactScore), inferred,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert corpus record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit corpus insert: %w", err)
	}

	s.l.Info("corpus records stored",
		applogger.Int("rows", len(records)),
		applogger.Duration("duration", time.Since(start)),
	)
	return nil
}

// QueryRecords reads records back, newest first.
func (s *CHCorpusStore) QueryRecords(ctx context.Context, ticker string, from, to time.Time, limit int) ([]models.NewsRecord, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT dedupe_key, published_at, ticker, title, source, url, summary, risk_tag, impact_score, time_inferred
        FROM news_corpus FINAL
        WHERE ticker = ? AND published_at >= ? AND published_at <= ?
        ORDER BY published_at DESC
        LIMIT ?`, ticker, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	defer rows.Close()

	var out []models.NewsRecord
	for rows.Next() {
		var r models.NewsRecord
		var tag string
		var impact int8
		var inferred uint8
		if err := rows.Scan(&r.DedupeKey, &r.PublishedAt, &r.Ticker, &r.Title, &r.Source,
			&r.URL, &r.Summary, &tag, &impact, &inferred); err != nil {
			return nil, fmt.Errorf("scan corpus record: %w", err)
		}
		r.RiskTag = models.RiskTag(tag)
		r.ImpactScore = int(impact)
		r.TimeInferred = inferred == 1
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("corpus rows: %w", err)
	}
	return out, nil
}

// StoreDecision persists a finished run with its full payload as JSON.
func (s *CHCorpusStore) StoreDecision(ctx context.Context, result *models.DecisionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO decision_runs (ticker, as_of, score, rating, payload)
        VALUES (?, ?, ?, ?, ?)`,
		result.Ticker, result.AsOf, int32(result.Score), string(result.Rating), string(payload))
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// Health pings the backing store.
func (s *CHCorpusStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

// Close closes the backing pool.
func (s *CHCorpusStore) Close() error {
	return s.client.Close()
}
