package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReaderOption configures Reader.
type ReaderOption func(*ReaderConfig)

// ReaderConfig holds reader configuration.
type ReaderConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// WithReaderBrokers sets Kafka brokers.
func WithReaderBrokers(brokers []string) ReaderOption {
	return func(c *ReaderConfig) { c.Brokers = brokers }
}

// WithReaderTopic sets the topic to consume.
func WithReaderTopic(topic string) ReaderOption {
	return func(c *ReaderConfig) { c.Topic = topic }
}

// WithReaderGroupID sets the consumer group ID.
func WithReaderGroupID(groupID string) ReaderOption {
	return func(c *ReaderConfig) { c.GroupID = groupID }
}

// Reader wraps a Kafka reader for bounded batch drains. The engine runs in
// batches, so it reads whatever is buffered on the topic up to a count and
// deadline rather than consuming forever.
type Reader struct {
	reader *kafka.Reader
}

// NewReader creates a Kafka reader.
func NewReader(opts ...ReaderOption) (*Reader, error) {
	cfg := &ReaderConfig{
		GroupID:  "equitypulse",
		MinBytes: 1,
		MaxBytes: 10e6,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("brokers are required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	return &Reader{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Brokers,
			Topic:    cfg.Topic,
			GroupID:  cfg.GroupID,
			MinBytes: cfg.MinBytes,
			MaxBytes: cfg.MaxBytes,
		}),
	}, nil
}

// Drain reads up to maxRecords message payloads, stopping early when the
// timeout expires or the topic runs dry. A deadline hit is not an error.
func (r *Reader) Drain(ctx context.Context, maxRecords int, timeout time.Duration) ([][]byte, error) {
	drainCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var payloads [][]byte
	for len(payloads) < maxRecords {
		msg, err := r.reader.ReadMessage(drainCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return payloads, nil
			}
			return payloads, fmt.Errorf("kafka read: %w", err)
		}
		payloads = append(payloads, msg.Value)
	}
	return payloads, nil
}

// Close closes the underlying reader.
func (r *Reader) Close() error {
	return r.reader.Close()
}
