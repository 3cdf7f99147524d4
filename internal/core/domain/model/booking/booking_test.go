package booking_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/booking"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	req := booking.Request{
		AccommodationID: kernel.NewUUID(),
		Date:            time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Time:            "14:30",
		NumberOfPeople:  2,
		RoomType:        "Deluxe",
	}

	t.Run("should create pending booking", func(t *testing.T) {
		b, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), req, time.Now())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, "Deluxe", b.Request().RoomType)
	})

	t.Run("should reject empty party and bad time", func(t *testing.T) {
		bad := req
		bad.NumberOfPeople = 0
		bad.Time = "2pm"

		_, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), bad, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "number of people")
		assert.Contains(t, err.Error(), "2pm")
	})
}
