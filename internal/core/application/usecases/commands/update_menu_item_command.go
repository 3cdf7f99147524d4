package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateMenuItemCommandIsNotConstructed = errors.New(
	"UpdateMenuItemCommand must be created via NewUpdateMenuItemCommand constructor",
)

// UpdateMenuItemCommand changes some fields of a dish on the caller's menu.
type UpdateMenuItemCommand struct { //nolint:recvcheck //using for validation
	vendorID kernel.UUID
	itemID   kernel.UUID
	patch    menu.Patch

	guard guard.ConstructorGuard
}

func NewUpdateMenuItemCommand(principal identity.Principal, itemID kernel.UUID, patch menu.Patch) (UpdateMenuItemCommand, error) {
	v, err := identity.AsVendor(principal, "update menu item")
	if err != nil {
		return UpdateMenuItemCommand{}, err
	}
	if err = itemID.Validate(); err != nil {
		return UpdateMenuItemCommand{}, errs.NewValueIsRequiredErrorWithCause("menu item id", err)
	}

	return UpdateMenuItemCommand{
		vendorID: v.VendorID(),
		itemID:   itemID,
		patch:    patch,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMenuItemCommandIsNotConstructed)
}

func (c UpdateMenuItemCommand) VendorID() kernel.UUID { return c.vendorID }
func (c UpdateMenuItemCommand) ItemID() kernel.UUID { return c.itemID }
func (c UpdateMenuItemCommand) Patch() menu.Patch { return c.patch }
