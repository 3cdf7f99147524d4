package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/booking"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateBookingCommandIsNotConstructed = errors.New(
	"CreateBookingCommand must be created via NewCreateBookingCommand constructor",
)

// CreateBookingCommand reserves an accommodation for the calling customer.
type CreateBookingCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	bookingID kernel.UUID
	request   booking.Request

	guard guard.ConstructorGuard
}

func NewCreateBookingCommand(principal identity.Principal, bookingID kernel.UUID, request booking.Request) (CreateBookingCommand, error) {
	customer, err := identity.AsCustomer(principal, "book accommodation")
	if err != nil {
		return CreateBookingCommand{}, err
	}
	if err = bookingID.Validate(); err != nil {
		return CreateBookingCommand{}, errs.NewValueIsRequiredErrorWithCause("booking id", err)
	}

	return CreateBookingCommand{
		userID:    customer.UserID(),
		bookingID: bookingID,
		request:   request,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBookingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBookingCommandIsNotConstructed)
}

func (c CreateBookingCommand) UserID() kernel.UUID { return c.userID }
func (c CreateBookingCommand) BookingID() kernel.UUID { return c.bookingID }
func (c CreateBookingCommand) Request() booking.Request { return c.request }
