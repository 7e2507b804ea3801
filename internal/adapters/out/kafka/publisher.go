// Package kafka mirrors dashboard notifications onto Kafka topics so other
// services can follow order decisions and ordering-window changes.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.Publisher. Every notification topic maps to a
// Kafka topic named prefix + topic; the writer creates missing topics.
type Publisher struct {
	writer messageWriter
	prefix string
	now    func() time.Time
}

// ParseBrokers splits a comma-separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

const (
	// batchTimeout bounds how long a message waits for batch companions.
	batchTimeout = 10 * time.Millisecond
	writeTimeout = 5 * time.Second
)

// NewPublisher returns a publisher over an asynchronous writer: Publish only
// enqueues, delivery errors are logged when the batch completes. Close flushes
// whatever is still queued.
func NewPublisher(brokers []string, prefix string, logger *slog.Logger) *Publisher {
	return newPublisher(newWriter(brokers, logger), prefix)
}

func newWriter(brokers []string, logger *slog.Logger) *kafka.Writer {
	logger = logger.With("component", "kafka_publisher")
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("Kafka delivery failed", "messages", len(messages), "error", err)
			}
		},
	}
}

func newPublisher(writer messageWriter, prefix string) *Publisher {
	return &Publisher{writer: writer, prefix: prefix, now: time.Now}
}

// Publish writes payload as JSON. The notification topic is also the message
// key, so events of one department stay ordered within a partition. With the
// asynchronous writer a nil error means enqueued, not delivered.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.TopicName(topic),
		Key:   []byte(topic),
		Value: data,
		Time:  p.now().UTC(),
	})
}

// TopicName is the Kafka topic a notification topic is written to.
func (p *Publisher) TopicName(topic string) string {
	return p.prefix + topic
}

// Close flushes messages still buffered by the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
