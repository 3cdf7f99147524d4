package commands

import (
	"context"

	"marketplace/internal/core/domain/model/booking"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateBookingCommandHandler stores a pending booking for an active
// accommodation. Unknown accommodations are ObjectNotFound; inactive ones
// are rejected as invalid.
type CreateBookingCommandHandler struct {
	uowFactory BookingUoWFactory
	clock      ports.Clock
}

func NewCreateBookingCommandHandler(uowFactory BookingUoWFactory, clock ports.Clock) CreateBookingCommandHandler {
	return CreateBookingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateBookingCommandHandler) Handle(ctx context.Context, cmd CreateBookingCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(cmd.BookingID(), cmd.UserID(), cmd.Request(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bookingRepo := uow.BookingRepository()
	active, err := bookingRepo.AccommodationIsActive(ctx, cmd.Request().AccommodationID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errs.NewValueIsInvalidError("accommodation is not accepting bookings")
	}

	if err = bookingRepo.Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
