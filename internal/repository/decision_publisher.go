package repository

import (
	"context"

	"EquityPulse/internal/domain/models"
	pkgkafka "EquityPulse/pkg/kafka"
)

// KafkaDecisionPublisher pushes finished runs onto the results topic so
// downstream consumers (alerting, memo builders) pick them up.
type KafkaDecisionPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaDecisionPublisher(producer *pkgkafka.Producer, topic string) *KafkaDecisionPublisher {
	return &KafkaDecisionPublisher{producer: producer, topic: topic}
}

// Publish sends the result keyed by ticker.
func (p *KafkaDecisionPublisher) Publish(ctx context.Context, result *models.DecisionResult) error {
	return p.producer.Publish(ctx, p.topic, []byte(result.Ticker), result)
}

// Close closes the underlying producer.
func (p *KafkaDecisionPublisher) Close() error {
	return p.producer.Close()
}
