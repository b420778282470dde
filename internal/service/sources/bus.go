package sources

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
	"EquityPulse/internal/news"
	"EquityPulse/pkg/kafka"
	applogger "EquityPulse/pkg/logger"
)

// busEnvelope is the wire shape upstream collectors publish on the bus.
type busEnvelope struct {
	PublishedAt string         `json:"published_at"`
	Ticker      string         `json:"ticker"`
	Title       string         `json:"title"`
	Source      string         `json:"source"`
	URL         string         `json:"url"`
	Summary     string         `json:"summary"`
	Raw         map[string]any `json:"raw"`
}

// BusSource drains news records that upstream collectors buffered on a Kafka
// topic since the last run. The drain is bounded so a noisy topic cannot
// stall the batch.
type BusSource struct {
	reader       *kafka.Reader
	log          *applogger.Logger
	maxRecords   int
	drainTimeout time.Duration
}

// NewBusSource creates the Kafka bus source.
func NewBusSource(reader *kafka.Reader, log *applogger.Logger, maxRecords int, drainTimeout time.Duration) *BusSource {
	if maxRecords <= 0 {
		maxRecords = 500
	}
	if drainTimeout <= 0 {
		drainTimeout = 5 * time.Second
	}
	return &BusSource{
		reader:       reader,
		log:          log,
		maxRecords:   maxRecords,
		drainTimeout: drainTimeout,
	}
}

func (s *BusSource) Name() string { return "bus" }

// Fetch drains buffered envelopes and keeps the ones for the ticker.
func (s *BusSource) Fetch(ctx context.Context, ticker string, _ int) ([]models.NewsRecord, error) {
	ticker = strings.ToUpper(ticker)

	payloads, err := s.reader.Drain(ctx, s.maxRecords, s.drainTimeout)
	if err != nil {
		return nil, err
	}

	var out []models.NewsRecord
	for _, payload := range payloads {
		var env busEnvelope
		if err := json.Unmarshal(payload, &env); err != nil {
			s.log.Warn("bus: dropping malformed envelope", applogger.Error(err))
			continue
		}
		if !strings.EqualFold(env.Ticker, ticker) {
			continue
		}

		source := env.Source
		if source == "" {
			source = "bus"
		}
		published, _ := news.ParseTimestamp(env.PublishedAt)

		out = append(out, models.NewsRecord{
			PublishedAt: published,
			Ticker:      ticker,
			Title:       env.Title,
			Source:      source,
			URL:         env.URL,
			Summary:     env.Summary,
			Raw:         env.Raw,
		})
	}
	return out, nil
}
