package outbox_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	id := kernel.NewUUID()

	msg, err := outbox.NewMessage(id, "order.status_changed", "vendor-1", map[string]string{"to": "ready"}, time.Now())

	require.NoError(t, err)
	assert.True(t, msg.AggregateID.IsEqual(id))
	assert.NoError(t, msg.ID.Validate())
	assert.JSONEq(t, `{"to":"ready"}`, string(msg.Payload))
	assert.Nil(t, msg.ProcessedAt)
}

func TestNewMessage_Invalid(t *testing.T) {
	_, err := outbox.NewMessage(kernel.UUID{}, "order.status_changed", "", nil, time.Now())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = outbox.NewMessage(kernel.NewUUID(), " ", "", nil, time.Now())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = outbox.NewMessage(kernel.NewUUID(), "x", "", make(chan int), time.Now())
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
