package rabbitmq_test

import (
	"context"
	"io"
	"testing"
	"time"

	"marketplace/internal/adapters/out/rabbitmq"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/outbox"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChannel answers every successful publish with reply, if set.
type MockChannel struct {
	mock.Mock
	confirms chan amqp.Confirmation
	reply    *amqp.Confirmation
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable).Error(0)
}

func (m *MockChannel) Confirm(noWait bool) error {
	return m.Called(noWait).Error(0)
}

func (m *MockChannel) NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation {
	m.confirms = confirm
	return confirm
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	err := m.Called(exchange, key, msg).Error(0)
	if err == nil && m.reply != nil {
		m.confirms <- *m.reply
	}
	return err
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func statusChanged(t *testing.T) outbox.Message {
	t.Helper()
	msg, err := outbox.NewMessage(kernel.NewUUID(), "order.status_changed", "vendor-1",
		map[string]string{"to": "ready"}, time.Now())
	require.NoError(t, err)
	return msg
}

func newPublisher(t *testing.T, ch *MockChannel) *rabbitmq.Publisher {
	t.Helper()
	ch.On("ExchangeDeclare", rabbitmq.DefaultExchange, "topic", true).Return(nil).Once()
	ch.On("Confirm", false).Return(nil).Once()
	p, err := rabbitmq.NewPublisher(ch, "", quietLogger())
	require.NoError(t, err)
	return p
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("routes by event type and waits for ack", func(t *testing.T) {
		ch := new(MockChannel)
		p := newPublisher(t, ch)
		msg := statusChanged(t)

		ch.reply = &amqp.Confirmation{DeliveryTag: 1, Ack: true}
		ch.On("PublishWithContext", rabbitmq.DefaultExchange, "order.status_changed",
			mock.MatchedBy(func(pub amqp.Publishing) bool {
				return string(pub.Body) == string(msg.Payload) &&
					pub.MessageId == msg.ID.String() &&
					pub.DeliveryMode == amqp.Persistent &&
					pub.Headers["partition_key"] == "vendor-1"
			})).Return(nil).Once()

		require.NoError(t, p.Publish(t.Context(), msg))
		ch.AssertExpectations(t)
	})

	t.Run("nack is an error", func(t *testing.T) {
		ch := new(MockChannel)
		p := newPublisher(t, ch)

		ch.reply = &amqp.Confirmation{DeliveryTag: 1, Ack: false}
		ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		assert.ErrorIs(t, p.Publish(t.Context(), statusChanged(t)), rabbitmq.ErrPublishNacked)
	})

	t.Run("publish failure", func(t *testing.T) {
		ch := new(MockChannel)
		p := newPublisher(t, ch)

		ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).Return(amqp.ErrClosed).Once()

		assert.ErrorIs(t, p.Publish(t.Context(), statusChanged(t)), amqp.ErrClosed)
	})

	t.Run("gives up when the context ends before the confirm", func(t *testing.T) {
		ch := new(MockChannel)
		p := newPublisher(t, ch)
		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		assert.ErrorIs(t, p.Publish(ctx, statusChanged(t)), context.DeadlineExceeded)
	})
}

func TestNewPublisher_DeclareFailure(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "events", "topic", true).Return(amqp.ErrClosed).Once()

	_, err := rabbitmq.NewPublisher(ch, "events", quietLogger())

	assert.ErrorIs(t, err, amqp.ErrClosed)
}
