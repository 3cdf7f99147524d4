package courier_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() courier.Profile {
	return courier.Profile{
		Phone:                  " +2348098765432",
		ServiceAreas:           courier.ParseServiceAreas("Yaba, Surulere,,"),
		DeliveryRadius:         "5km",
		OpeningHours:           "08:00:00",
		ClosingHours:           "20:30",
		HasBike:                true,
		VehicleType:            courier.VehicleBike,
		VerificationPreference: courier.DocumentNIN,
		NINNumber:              "12345678901",
		AgreedToTerms:          true,
	}
}

func TestNewCourier(t *testing.T) {
	t.Run("should register pending courier", func(t *testing.T) {
		userID := kernel.NewUUID()

		c, err := courier.NewCourier(kernel.NewUUID(), userID, validProfile(), time.Now())

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, userID, c.UserID())
		assert.Equal(t, "+2348098765432", c.Phone())
		assert.Equal(t, []string{"Yaba", "Surulere"}, c.Profile().ServiceAreas)
		assert.Equal(t, "08:00", c.Profile().OpeningHours)
		assert.Equal(t, "20:30", c.Profile().ClosingHours)
		assert.Equal(t, courier.VerificationPending, c.Verification())
	})

	t.Run("should require agreement to terms", func(t *testing.T) {
		p := validProfile()
		p.AgreedToTerms = false

		_, err := courier.NewCourier(kernel.NewUUID(), kernel.NewUUID(), p, time.Now())

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should collect missing fields", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), kernel.UUID{}, courier.Profile{
			VerificationPreference: courier.DocumentVotersCard,
			AgreedToTerms:          true,
		}, time.Now())

		require.Error(t, err)
		for _, field := range []string{"user id", "phone", "service areas", "delivery radius", "opening hours", "closing hours"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("should need a nin number for nin verification", func(t *testing.T) {
		p := validProfile()
		p.NINNumber = " "

		_, err := courier.NewCourier(kernel.NewUUID(), kernel.NewUUID(), p, time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "nin number")
	})

	t.Run("should reject unknown choices", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(p *courier.Profile)
			want   string
		}{
			{"vehicle", func(p *courier.Profile) { p.VehicleType = "rocket" }, "rocket"},
			{"document", func(p *courier.Profile) { p.VerificationPreference = "passport" }, "passport"},
			{"hours", func(p *courier.Profile) { p.ClosingHours = "late" }, "late"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p := validProfile()
				tt.mutate(&p)

				_, err := courier.NewCourier(kernel.NewUUID(), kernel.NewUUID(), p, time.Now())

				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Contains(t, err.Error(), tt.want)
			})
		}
	})

	t.Run("should reject unknown verification status on restore", func(t *testing.T) {
		_, err := courier.RestoreCourier(kernel.NewUUID(), kernel.NewUUID(), validProfile(), "suspended", time.Now())

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCourier_Validate(t *testing.T) {
	var c *courier.Courier

	assert.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
}
