package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterVendorCommandHandler_Handle(t *testing.T) {
	customer, err := identity.NewCustomer(kernel.NewUUID())
	require.NoError(t, err)
	profile := vendor.Profile{
		BusinessName: "Bisi Kitchen",
		Category:     "Restaurant",
		Address:      "3 Herbert Macaulay Way",
		ServiceAreas: []string{"Yaba"},
	}

	t.Run("applies the default time zone", func(t *testing.T) {
		ctx := t.Context()
		uow, vendors := new(MockUoW), new(MockVendorRepository)
		handler := commands.NewRegisterVendorCommandHandler(catalogUoWFactory{uow: uow}, fixedClock(actionNow), "Africa/Lagos")
		cmd, err := commands.NewRegisterVendorCommand(customer, kernel.NewUUID(), profile)
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("VendorRepository").Return(vendors).Once(),
			vendors.On("ExistsForUser", ctx, customer.UserID()).Return(false, nil).Once(),
			vendors.On("Add", ctx, mock.AnythingOfType("*vendor.Vendor")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		v, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "Africa/Lagos", v.Location().String())
		assert.Equal(t, customer.UserID(), v.UserID())
		assert.Equal(t, vendor.VerificationPending, v.Verification())
		vendors.AssertExpectations(t)
	})

	t.Run("second profile conflicts", func(t *testing.T) {
		ctx := t.Context()
		uow, vendors := new(MockUoW), new(MockVendorRepository)
		handler := commands.NewRegisterVendorCommandHandler(catalogUoWFactory{uow: uow}, fixedClock(actionNow), "UTC")
		cmd, err := commands.NewRegisterVendorCommand(customer, kernel.NewUUID(), profile)
		require.NoError(t, err)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("VendorRepository").Return(vendors).Once()
		vendors.On("ExistsForUser", ctx, customer.UserID()).Return(true, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrConflict)
		vendors.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("invalid profile never opens a transaction", func(t *testing.T) {
		uow := new(MockUoW)
		handler := commands.NewRegisterVendorCommandHandler(catalogUoWFactory{uow: uow}, fixedClock(actionNow), "Mars/Olympus")
		cmd, err := commands.NewRegisterVendorCommand(customer, kernel.NewUUID(), profile)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		assert.True(t, errs.IsValidation(err))
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestCreateMenuItemCommandHandler_Handle(t *testing.T) {
	principal, err := identity.NewVendor(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	details := menu.Details{
		DishName:     "Pepper Soup",
		Price:        kernel.MustMoney(180000),
		Category:     "Soups",
		Quantity:     4,
		AvailableNow: true,
	}

	t.Run("customers cannot manage menus", func(t *testing.T) {
		customer, err := identity.NewCustomer(kernel.NewUUID())
		require.NoError(t, err)

		_, err = commands.NewCreateMenuItemCommand(customer, kernel.NewUUID(), details)

		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("stores the item for the caller's vendor", func(t *testing.T) {
		ctx := t.Context()
		uow, vendors, items := new(MockUoW), new(MockVendorRepository), new(MockMenuRepository)
		handler := commands.NewCreateMenuItemCommandHandler(catalogUoWFactory{uow: uow})
		cmd, err := commands.NewCreateMenuItemCommand(principal, kernel.NewUUID(), details)
		require.NoError(t, err)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("VendorRepository").Return(vendors).Once()
		vendors.On("Get", ctx, principal.VendorID()).Return(newTestVendor(t), nil).Once()
		uow.On("MenuRepository").Return(items).Once()
		items.On("Add", ctx, mock.AnythingOfType("*menu.Item")).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Maybe()

		item, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, principal.VendorID(), item.VendorID())
		assert.Equal(t, cmd.ItemID(), item.ID())
		items.AssertExpectations(t)
	})

	t.Run("zero price is rejected before the store", func(t *testing.T) {
		uow := new(MockUoW)
		handler := commands.NewCreateMenuItemCommandHandler(catalogUoWFactory{uow: uow})
		free := details
		free.Price = kernel.Money{}
		cmd, err := commands.NewCreateMenuItemCommand(principal, kernel.NewUUID(), free)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
