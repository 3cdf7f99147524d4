package ports

import (
	"context"

	"marketplace/internal/core/domain/model/booking"
	"marketplace/internal/core/domain/model/kernel"
)

type BookingRepository interface {
	Add(ctx context.Context, b *booking.Booking) error
	// AccommodationIsActive returns ObjectNotFound for unknown accommodations.
	AccommodationIsActive(ctx context.Context, accommodationID kernel.UUID) (bool, error)
}
