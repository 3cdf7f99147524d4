package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateMenuItemCommandIsNotConstructed = errors.New(
	"CreateMenuItemCommand must be created via NewCreateMenuItemCommand constructor",
)

// CreateMenuItemCommand adds a dish to the calling vendor's menu.
type CreateMenuItemCommand struct { //nolint:recvcheck //using for validation
	vendorID kernel.UUID
	itemID   kernel.UUID
	details  menu.Details

	guard guard.ConstructorGuard
}

func NewCreateMenuItemCommand(principal identity.Principal, itemID kernel.UUID, details menu.Details) (CreateMenuItemCommand, error) {
	v, err := identity.AsVendor(principal, "create menu item")
	if err != nil {
		return CreateMenuItemCommand{}, err
	}
	if err = itemID.Validate(); err != nil {
		return CreateMenuItemCommand{}, errs.NewValueIsRequiredErrorWithCause("menu item id", err)
	}

	return CreateMenuItemCommand{
		vendorID: v.VendorID(),
		itemID:   itemID,
		details:  details,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateMenuItemCommandIsNotConstructed)
}

func (c CreateMenuItemCommand) VendorID() kernel.UUID { return c.vendorID }
func (c CreateMenuItemCommand) ItemID() kernel.UUID { return c.itemID }
func (c CreateMenuItemCommand) Details() menu.Details { return c.details }
