// Package rabbitmq relays outbox messages to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"errors"
	"sync"

	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const DefaultExchange = "marketplace.events"

var ErrPublishNacked = errors.New("publish NACK from broker")

var _ ports.EventPublisher = (*Publisher)(nil)

// Channel is the part of *amqp.Channel the publisher drives.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Confirm(noWait bool) error
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher routes each message by its event type and waits for the broker
// to confirm it. Publishes are serialized so confirms pair with messages.
type Publisher struct {
	conn     *amqp.Connection
	ch       Channel
	acks     <-chan amqp.Confirmation
	exchange string
	logger   *logrus.Entry

	mu sync.Mutex
}

// Dial connects to url and declares a durable topic exchange.
func Dial(url, exchange string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	p, err := NewPublisher(ch, exchange, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func NewPublisher(ch Channel, exchange string, logger *logrus.Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Publisher{
		ch:       ch,
		acks:     ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		exchange: exchange,
		logger:   logger.WithField("component", "rabbitmq"),
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, msg outbox.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(ctx, p.exchange, msg.EventType, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    msg.ID.String(),
		Timestamp:    msg.OccurredAt,
		Type:         msg.EventType,
		Headers: amqp.Table{
			"partition_key": msg.PartitionKey,
			"aggregate_id":  msg.AggregateID.String(),
		},
		Body: msg.Payload,
	})
	if err != nil {
		p.logger.WithError(err).WithField("message_id", msg.ID.String()).Error("Failed to publish to RabbitMQ")
		return err
	}

	select {
	case conf, ok := <-p.acks:
		if !ok {
			return amqp.ErrClosed
		}
		if !conf.Ack {
			p.logger.WithField("message_id", msg.ID.String()).Warn("RabbitMQ refused message")
			return ErrPublishNacked
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
