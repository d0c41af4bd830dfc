// Package events publishes back-office domain events to Kafka
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cabanas-backoffice/internal/logger"

	"github.com/IBM/sarama"
)

const (
	ReservationCreated       = "reservation.created"
	ReservationUpdated       = "reservation.updated"
	ReservationStatusChanged = "reservation.status_changed"
	PaymentCreated           = "payment.created"
	PaymentDeleted           = "payment.deleted"
	MessageReceived          = "message.received"
)

// Event is the envelope written to every topic
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType, key, actorID string, payload any) error
	Close() error
}

type kafkaPublisher struct {
	producer    sarama.SyncProducer
	topicPrefix string
	now         func() time.Time
}

// NewKafkaPublisher connects a synchronous producer to brokers
func NewKafkaPublisher(brokers []string, topicPrefix string) (Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewPublisherWithProducer(producer, topicPrefix), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, topicPrefix string) Publisher {
	return &kafkaPublisher{producer: producer, topicPrefix: topicPrefix, now: time.Now}
}

// Topic returns the topic name for an event type
func Topic(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType, key, actorID string, payload any) error {
	data, err := json.Marshal(Event{
		Type:       eventType,
		Key:        key,
		ActorID:    actorID,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	topic := Topic(p.topicPrefix, eventType)
	logger.ExternalServiceCall("kafka", "SendMessage", "topic", topic, "key", key)
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	})
	logger.ExternalServiceResult("kafka", "SendMessage", err, "topic", topic, "partition", partition, "offset", offset)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher drops every event. Used when no brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, eventType, key, actorID string, payload any) error {
	logger.Debug("Event publishing disabled", "type", eventType, "key", key)
	return nil
}

func (noopPublisher) Close() error { return nil }
