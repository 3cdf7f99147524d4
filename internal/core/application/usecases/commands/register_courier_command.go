package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand creates the courier profile of an existing account.
type RegisterCourierCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	courierID kernel.UUID
	profile   courier.Profile

	guard guard.ConstructorGuard
}

func NewRegisterCourierCommand(principal identity.Principal, courierID kernel.UUID, profile courier.Profile) (RegisterCourierCommand, error) {
	if principal == nil {
		return RegisterCourierCommand{}, errs.NewValueIsRequiredError("principal")
	}
	if err := courierID.Validate(); err != nil {
		return RegisterCourierCommand{}, errs.NewValueIsRequiredErrorWithCause("courier id", err)
	}

	return RegisterCourierCommand{
		userID:    principal.UserID(),
		courierID: courierID,
		profile:   profile,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

func (c RegisterCourierCommand) UserID() kernel.UUID { return c.userID }
func (c RegisterCourierCommand) CourierID() kernel.UUID { return c.courierID }
func (c RegisterCourierCommand) Profile() courier.Profile { return c.profile }
