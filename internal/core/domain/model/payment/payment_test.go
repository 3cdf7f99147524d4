package payment_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	now := time.Now()

	t.Run("should default currency and start pending", func(t *testing.T) {
		p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(500000), "", payment.MethodCard, "Top up", now)

		require.NoError(t, err)
		assert.Equal(t, "NGN", p.Currency())
		assert.Equal(t, payment.StatusPending, p.Status())
		assert.Regexp(t, `^BESTYY_[0-9A-F]{16}$`, p.Reference())
	})

	t.Run("should reject zero amount and unknown method", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), kernel.Money{}, "NGN", "crypto", "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount must be greater than 0")
		assert.Contains(t, err.Error(), "crypto")
	})

	t.Run("should record gateway outcome", func(t *testing.T) {
		p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(100), "ngn", payment.MethodBankTransfer, "", now)
		require.NoError(t, err)

		p.MarkSuccessful("4099260516", map[string]any{"channel": "card"}, now.Add(time.Minute))

		s := p.Snapshot()
		assert.Equal(t, payment.StatusSuccessful, s.Status)
		assert.Equal(t, "4099260516", s.TransactionID)
		assert.Equal(t, "card", s.Metadata["channel"])

		restored, err := payment.RestorePayment(s)
		require.NoError(t, err)
		assert.Equal(t, s, restored.Snapshot())
	})

	t.Run("should mark pending payment failed", func(t *testing.T) {
		p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(100), "", payment.MethodCard, "", now)
		require.NoError(t, err)

		require.NoError(t, p.MarkFailed(map[string]any{"gateway_response": "Declined"}, now.Add(time.Minute)))

		assert.Equal(t, payment.StatusFailed, p.Status())
		assert.Equal(t, "Declined", p.Snapshot().Metadata["gateway_response"])
	})

	t.Run("should keep successful payment settled", func(t *testing.T) {
		p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(100), "", payment.MethodCard, "", now)
		require.NoError(t, err)
		p.MarkSuccessful("4099260516", map[string]any{"channel": "card"}, now.Add(time.Minute))
		settled := p.Snapshot()

		err = p.MarkFailed(map[string]any{"gateway_response": "Declined"}, now.Add(time.Hour))

		assert.ErrorIs(t, err, payment.ErrPaymentAlreadySettled)
		assert.Equal(t, settled, p.Snapshot())
	})
}
