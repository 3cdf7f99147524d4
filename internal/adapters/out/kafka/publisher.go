// Package kafka relays outbox messages to a Kafka topic.
package kafka

import (
	"context"

	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/ports"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

const DefaultTopic = "marketplace.orders"

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher writes each message keyed by its partition key so that one
// vendor's events land on one partition in order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logrus.Entry
}

func NewPublisher(brokers []string, topic string, logger *logrus.Logger) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return NewPublisherWithProducer(producer, topic, logger), nil
}

func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *logrus.Logger) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger.WithField("component", "kafka"),
	}
}

func (p *Publisher) Publish(ctx context.Context, msg outbox.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.PartitionKey),
		Value: sarama.ByteEncoder(msg.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(msg.EventType)},
			{Key: []byte("message_id"), Value: []byte(msg.ID.String())},
			{Key: []byte("aggregate_id"), Value: []byte(msg.AggregateID.String())},
		},
		Timestamp: msg.OccurredAt,
	})
	if err != nil {
		p.logger.WithError(err).WithField("message_id", msg.ID.String()).Error("Failed to send message to Kafka")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"topic":      p.topic,
		"partition":  partition,
		"offset":     offset,
		"event_type": msg.EventType,
		"message_id": msg.ID.String(),
	}).Debug("Event published to Kafka")
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
