package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterVendorCommandIsNotConstructed = errors.New(
	"RegisterVendorCommand must be created via NewRegisterVendorCommand constructor",
)

// RegisterVendorCommand creates the vendor profile of an existing account.
// Profile fields are validated by the vendor aggregate in the handler, after
// the default time zone has been applied.
type RegisterVendorCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	vendorID kernel.UUID
	profile  vendor.Profile

	guard guard.ConstructorGuard
}

func NewRegisterVendorCommand(principal identity.Principal, vendorID kernel.UUID, profile vendor.Profile) (RegisterVendorCommand, error) {
	if principal == nil {
		return RegisterVendorCommand{}, errs.NewValueIsRequiredError("principal")
	}
	if err := vendorID.Validate(); err != nil {
		return RegisterVendorCommand{}, errs.NewValueIsRequiredErrorWithCause("vendor id", err)
	}

	return RegisterVendorCommand{
		userID:   principal.UserID(),
		vendorID: vendorID,
		profile:  profile,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterVendorCommand) Validate() error {
	return c.guard.Validate(ErrRegisterVendorCommandIsNotConstructed)
}

func (c RegisterVendorCommand) UserID() kernel.UUID { return c.userID }
func (c RegisterVendorCommand) VendorID() kernel.UUID { return c.vendorID }
func (c RegisterVendorCommand) Profile() vendor.Profile { return c.profile }
