// Package kafka publishes outbox events to Kafka.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/light-bringer/catalog-search-service/internal/app/outbox"
)

// Header keys set on every published message.
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
)

// Producer writes outbox messages to a single topic, keyed by aggregate id
// so events of one product stay ordered within a partition.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer creates a producer for topic on brokers.
func NewProducer(brokers []string, topic string, logger *slog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchSize:    100,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return &Producer{
		writer: writer,
		logger: logger.With("component", "kafka_producer", "topic", topic),
	}
}

var _ outbox.Publisher = (*Producer)(nil)

// Publish writes msgs synchronously.
func (p *Producer) Publish(ctx context.Context, msgs ...outbox.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, toKafkaMessages(msgs)...); err != nil {
		return fmt.Errorf("failed to write %d messages: %w", len(msgs), err)
	}
	p.logger.Debug("messages published", "count", len(msgs))
	return nil
}

// Close flushes pending writes.
func (p *Producer) Close() error {
	return p.writer.Close()
}

func toKafkaMessages(msgs []outbox.Message) []kafka.Message {
	out := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, kafka.Message{
			Key:   []byte(m.AggregateID),
			Value: m.Payload,
			Headers: []kafka.Header{
				{Key: HeaderEventID, Value: []byte(m.EventID)},
				{Key: HeaderEventType, Value: []byte(m.EventType)},
			},
		})
	}
	return out
}
