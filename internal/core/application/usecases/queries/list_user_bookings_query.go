package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/booking"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrListUserBookingsQueryIsNotConstructed = errors.New(
	"ListUserBookingsQuery must be created via NewListUserBookingsQuery constructor",
)

// ListUserBookingsQuery lists the calling customer's accommodation bookings.
type ListUserBookingsQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListUserBookingsQuery(principal identity.Principal) (ListUserBookingsQuery, error) {
	c, err := identity.AsCustomer(principal, "list bookings")
	if err != nil {
		return ListUserBookingsQuery{}, err
	}
	return ListUserBookingsQuery{userID: c.UserID(), guard: guard.NewConstructorGuard()}, nil
}

func (q ListUserBookingsQuery) Validate() error {
	return q.guard.Validate(ErrListUserBookingsQueryIsNotConstructed)
}

// UserBooking is a booking joined with the accommodation it reserves.
// Date is the booked calendar day at UTC midnight.
type UserBooking struct {
	ID                kernel.UUID
	AccommodationID   kernel.UUID
	AccommodationName string
	City              string
	Date              time.Time
	Time              string
	NumberOfPeople    int
	RoomType          string
	SpecialRequests   string
	Status            booking.Status
	CreatedAt         time.Time
}
