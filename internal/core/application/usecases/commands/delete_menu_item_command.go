package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrDeleteMenuItemCommandIsNotConstructed = errors.New(
	"DeleteMenuItemCommand must be created via NewDeleteMenuItemCommand constructor",
)

// DeleteMenuItemCommand takes a dish off the caller's menu. Orders that
// already reference it keep their line snapshots.
type DeleteMenuItemCommand struct { //nolint:recvcheck //using for validation
	vendorID kernel.UUID
	itemID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteMenuItemCommand(principal identity.Principal, itemID kernel.UUID) (DeleteMenuItemCommand, error) {
	v, err := identity.AsVendor(principal, "delete menu item")
	if err != nil {
		return DeleteMenuItemCommand{}, err
	}
	if err = itemID.Validate(); err != nil {
		return DeleteMenuItemCommand{}, errs.NewValueIsRequiredErrorWithCause("menu item id", err)
	}

	return DeleteMenuItemCommand{
		vendorID: v.VendorID(),
		itemID:   itemID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteMenuItemCommandIsNotConstructed)
}

func (c DeleteMenuItemCommand) VendorID() kernel.UUID { return c.vendorID }
func (c DeleteMenuItemCommand) ItemID() kernel.UUID { return c.itemID }
