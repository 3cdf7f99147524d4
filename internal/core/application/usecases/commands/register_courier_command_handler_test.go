package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterCourierCommandHandler_Handle(t *testing.T) {
	customer, err := identity.NewCustomer(kernel.NewUUID())
	require.NoError(t, err)
	profile := courier.Profile{
		Phone:                  "+2348098765432",
		ServiceAreas:           []string{"Yaba"},
		DeliveryRadius:         "5km",
		OpeningHours:           "08:00",
		ClosingHours:           "20:00",
		VehicleType:            courier.VehicleVan,
		VerificationPreference: courier.DocumentDriversLicense,
		AgreedToTerms:          true,
	}

	t.Run("stores a pending courier", func(t *testing.T) {
		ctx := t.Context()
		uow, couriers := new(MockUoW), new(MockCourierRepository)
		handler := commands.NewRegisterCourierCommandHandler(courierUoWFactory{uow: uow}, fixedClock(actionNow))
		cmd, err := commands.NewRegisterCourierCommand(customer, kernel.NewUUID(), profile)
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CourierRepository").Return(couriers).Once(),
			couriers.On("ExistsForUser", ctx, customer.UserID()).Return(false, nil).Once(),
			couriers.On("PhoneTaken", ctx, "+2348098765432").Return(false, nil).Once(),
			couriers.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, cmd.CourierID(), c.ID())
		assert.Equal(t, customer.UserID(), c.UserID())
		assert.Equal(t, courier.VerificationPending, c.Verification())
		assert.Equal(t, actionNow, c.CreatedAt())
		couriers.AssertExpectations(t)
	})

	t.Run("second profile conflicts", func(t *testing.T) {
		ctx := t.Context()
		uow, couriers := new(MockUoW), new(MockCourierRepository)
		handler := commands.NewRegisterCourierCommandHandler(courierUoWFactory{uow: uow}, fixedClock(actionNow))
		cmd, err := commands.NewRegisterCourierCommand(customer, kernel.NewUUID(), profile)
		require.NoError(t, err)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CourierRepository").Return(couriers).Once()
		couriers.On("ExistsForUser", ctx, customer.UserID()).Return(true, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrConflict)
		couriers.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("phone in use conflicts", func(t *testing.T) {
		ctx := t.Context()
		uow, couriers := new(MockUoW), new(MockCourierRepository)
		handler := commands.NewRegisterCourierCommandHandler(courierUoWFactory{uow: uow}, fixedClock(actionNow))
		cmd, err := commands.NewRegisterCourierCommand(customer, kernel.NewUUID(), profile)
		require.NoError(t, err)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CourierRepository").Return(couriers).Once()
		couriers.On("ExistsForUser", ctx, customer.UserID()).Return(false, nil).Once()
		couriers.On("PhoneTaken", ctx, "+2348098765432").Return(true, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "phone")
		couriers.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("invalid profile never opens a transaction", func(t *testing.T) {
		uow := new(MockUoW)
		handler := commands.NewRegisterCourierCommandHandler(courierUoWFactory{uow: uow}, fixedClock(actionNow))
		incomplete := profile
		incomplete.AgreedToTerms = false
		cmd, err := commands.NewRegisterCourierCommand(customer, kernel.NewUUID(), incomplete)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		assert.True(t, errs.IsValidation(err))
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("unconstructed command", func(t *testing.T) {
		handler := commands.NewRegisterCourierCommandHandler(courierUoWFactory{uow: new(MockUoW)}, fixedClock(actionNow))

		_, err := handler.Handle(t.Context(), commands.RegisterCourierCommand{})

		assert.ErrorIs(t, err, commands.ErrRegisterCourierCommandIsNotConstructed)
	})
}
