package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking or RestoreBooking")

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Request is what a customer submits to reserve an accommodation.
type Request struct {
	AccommodationID kernel.UUID
	Date            time.Time
	Time            string
	NumberOfPeople  int
	RoomType        string
	SpecialRequests string
}

// Booking is a customer's reservation at an accommodation.
type Booking struct {
	id        kernel.UUID
	userID    kernel.UUID
	request   Request
	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewBooking creates a pending booking. Time is "HH:MM" in 24-hour form.
func NewBooking(id, userID kernel.UUID, r Request, now time.Time) (*Booking, error) {
	return build(id, userID, r, StatusPending, now)
}

func RestoreBooking(id, userID kernel.UUID, r Request, status Status, createdAt time.Time) (*Booking, error) {
	return build(id, userID, r, status, createdAt)
}

func build(id, userID kernel.UUID, r Request, status Status, createdAt time.Time) (*Booking, error) {
	r.RoomType = strings.TrimSpace(r.RoomType)
	r.SpecialRequests = strings.TrimSpace(r.SpecialRequests)

	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("booking id", err))
	}
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user id", err))
	}
	if err := r.AccommodationID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("accommodation id", err))
	}
	if r.Date.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("booking date"))
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("booking time", fmt.Errorf("%q is not HH:MM", r.Time)))
	}
	if r.NumberOfPeople <= 0 {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("number of people", fmt.Errorf("%d is not greater than 0", r.NumberOfPeople)))
	}
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("booking status", fmt.Errorf("%q is not a valid status", string(status))))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Booking{id: id, userID: userID, request: r, status: status, createdAt: createdAt, isConstructed: true}, nil
}

func (b *Booking) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookingIsNotConstructed
	}
	return nil
}

func (b *Booking) ID() kernel.UUID { return b.id }
func (b *Booking) UserID() kernel.UUID { return b.userID }
func (b *Booking) Request() Request { return b.request }
func (b *Booking) Status() Status { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
