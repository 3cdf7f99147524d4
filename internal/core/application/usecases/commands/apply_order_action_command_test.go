package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplyOrderActionCommand(t *testing.T) {
	vendorPrincipal, err := identity.NewVendor(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	orderID := kernel.NewUUID()

	t.Run("parses the action name", func(t *testing.T) {
		cmd, err := commands.NewApplyOrderActionCommand(vendorPrincipal, orderID, "mark-ready")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, order.ActionMarkReady, cmd.Action())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, vendorPrincipal, cmd.Principal())
	})

	t.Run("unknown action is InvalidAction", func(t *testing.T) {
		_, err := commands.NewApplyOrderActionCommand(vendorPrincipal, orderID, "teleport")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidAction)
	})

	t.Run("missing principal and order id", func(t *testing.T) {
		_, err := commands.NewApplyOrderActionCommand(nil, kernel.UUID{}, "mark-ready")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "principal")
		assert.Contains(t, err.Error(), "order id")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.ApplyOrderActionCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrApplyOrderActionCommandIsNotConstructed)
	})
}
