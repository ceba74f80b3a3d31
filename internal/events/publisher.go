// Package events publishes order lifecycle events for downstream
// consumers. Publishing is best effort: a failed publish is logged and
// never rolls back the write that produced it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Event types emitted by the order workflow.
const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// Event is the JSON payload written to the order-events topic.
type Event struct {
	EventID   string         `json:"event_id"`
	OrderID   string         `json:"order_id"`
	Type      string         `json:"type"`
	CreatedAt time.Time      `json:"created_at"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Publisher emits order lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// kafkaPublisher writes events to a Kafka topic, keyed by order ID so
// events for one order stay in partition order.
type kafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewKafkaPublisher creates a Kafka-backed publisher from a comma-separated
// broker list.
func NewKafkaPublisher(brokersCSV, topic string, logger zerolog.Logger) Publisher {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &kafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "event-publisher").Logger(),
	}
}

// Publish marshals the event and writes it keyed by order ID.
func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  event.CreatedAt,
	})
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("order_id", event.OrderID).
			Str("type", event.Type).
			Msg("failed to publish event")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug().
		Str("order_id", event.OrderID).
		Str("type", event.Type).
		Msg("event published")

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// nopPublisher discards events. Used when no brokers are configured.
type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (nopPublisher) Close() error                                   { return nil }
