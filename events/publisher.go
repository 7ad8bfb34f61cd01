// Package events publishes article lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

const (
	TypeSummarized = "article.summarized"
	TypeDeleted    = "article.deleted"
)

// Event is the JSON payload written to the topic, keyed by URL.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	URL  string    `json:"url"`
	At   time.Time `json:"at"`
}

func NewEvent(eventType, url string) Event {
	return Event{
		ID:   uuid.NewString(),
		Type: eventType,
		URL:  url,
		At:   time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Kafka publishes through a synchronous producer so a failed send is reported to the caller.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
}

// ProducerConfig returns the sarama settings used for the events producer.
func ProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Timeout = 10 * time.Second
	return cfg
}

func NewKafka(brokers []string, topic string) (*Kafka, error) {
	producer, err := sarama.NewSyncProducer(brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewKafkaWithProducer(producer, topic), nil
}

func NewKafkaWithProducer(producer sarama.SyncProducer, topic string) *Kafka {
	return &Kafka{producer: producer, topic: topic}
}

func (k *Kafka) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(e.URL),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(e.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", e.Type, k.topic, err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.producer.Close()
}

// Noop is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
