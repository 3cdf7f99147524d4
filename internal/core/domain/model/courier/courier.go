// Package courier holds the profile a user registers to deliver orders.
//
// A courier profile records where and when the courier works, how they
// travel and which document they verify with. Verification starts pending
// and is reviewed outside the marketplace.
package courier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")

const hoursLayout = "15:04"

type VehicleType string

const (
	VehicleNone  VehicleType = ""
	VehicleBike  VehicleType = "bike"
	VehicleCar   VehicleType = "car"
	VehicleVan   VehicleType = "van"
	VehicleOther VehicleType = "other"
)

func (v VehicleType) Validate() error {
	switch v {
	case VehicleNone, VehicleBike, VehicleCar, VehicleVan, VehicleOther:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not a known vehicle", string(v)))
}

// Document is the identity document a courier verifies with.
type Document string

const (
	DocumentNIN            Document = "NIN"
	DocumentDriversLicense Document = "DL"
	DocumentVotersCard     Document = "VC"
)

func (d Document) Validate() error {
	switch d {
	case DocumentNIN, DocumentDriversLicense, DocumentVotersCard:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("verification preference", fmt.Errorf("%q is not NIN, DL or VC", string(d)))
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Validate() error {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("verification status", fmt.Errorf("%q is not a valid verification status", string(s)))
}

// Profile is what a courier fills in on signup. Hours are "HH:MM" in the
// courier's local time.
type Profile struct {
	Phone                  string
	ServiceAreas           []string
	DeliveryRadius         string
	OpeningHours           string
	ClosingHours           string
	HasBike                bool
	VehicleType            VehicleType
	VerificationPreference Document
	NINNumber              string
	AgreedToTerms          bool
}

type Courier struct {
	id           kernel.UUID
	userID       kernel.UUID
	profile      Profile
	verification VerificationStatus
	createdAt    time.Time

	isConstructed bool
}

// NewCourier registers a courier with pending verification. Terms must be
// accepted.
func NewCourier(id, userID kernel.UUID, profile Profile, now time.Time) (*Courier, error) {
	if !profile.AgreedToTerms {
		return nil, errs.NewValueIsRequiredError("agreement to terms")
	}
	return build(id, userID, profile, VerificationPending, now)
}

func RestoreCourier(id, userID kernel.UUID, profile Profile, verification VerificationStatus, createdAt time.Time) (*Courier, error) {
	return build(id, userID, profile, verification, createdAt)
}

func build(id, userID kernel.UUID, profile Profile, verification VerificationStatus, createdAt time.Time) (*Courier, error) {
	profile.Phone = strings.TrimSpace(profile.Phone)
	profile.ServiceAreas = normalizeAreas(profile.ServiceAreas)
	profile.DeliveryRadius = strings.TrimSpace(profile.DeliveryRadius)
	profile.NINNumber = strings.TrimSpace(profile.NINNumber)

	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("courier id", err))
	}
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user id", err))
	}
	if profile.Phone == "" {
		problems = append(problems, errs.NewValueIsRequiredError("phone"))
	} else if len(profile.Phone) > 16 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("phone length", len(profile.Phone), 1, 16))
	}
	if len(profile.ServiceAreas) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("service areas"))
	}
	if profile.DeliveryRadius == "" {
		problems = append(problems, errs.NewValueIsRequiredError("delivery radius"))
	}
	opening, err := parseHours("opening hours", profile.OpeningHours)
	if err != nil {
		problems = append(problems, err)
	}
	closing, err := parseHours("closing hours", profile.ClosingHours)
	if err != nil {
		problems = append(problems, err)
	}
	if err = profile.VehicleType.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err = profile.VerificationPreference.Validate(); err != nil {
		problems = append(problems, err)
	}
	if profile.VerificationPreference == DocumentNIN && profile.NINNumber == "" {
		problems = append(problems, errs.NewValueIsRequiredError("nin number"))
	}
	if len(profile.NINNumber) > 20 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("nin number length", len(profile.NINNumber), 0, 20))
	}
	if err = verification.Validate(); err != nil {
		problems = append(problems, err)
	}

	if err = errors.Join(problems...); err != nil {
		return nil, err
	}

	profile.OpeningHours = opening.Format(hoursLayout)
	profile.ClosingHours = closing.Format(hoursLayout)

	return &Courier{
		id:            id,
		userID:        userID,
		profile:       profile,
		verification:  verification,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// parseHours accepts "HH:MM" and "HH:MM:SS".
func parseHours(name, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errs.NewValueIsRequiredError(name)
	}
	for _, layout := range []string{hoursLayout, time.TimeOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not HH:MM", value))
}

// ParseServiceAreas splits a comma-separated list as entered on the signup form.
func ParseServiceAreas(s string) []string {
	return normalizeAreas(strings.Split(s, ","))
}

func normalizeAreas(areas []string) []string {
	out := make([]string, 0, len(areas))
	for _, a := range areas {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

func (c *Courier) ID() kernel.UUID { return c.id }
func (c *Courier) UserID() kernel.UUID { return c.userID }
func (c *Courier) Profile() Profile { return c.profile }
func (c *Courier) Phone() string { return c.profile.Phone }
func (c *Courier) Verification() VerificationStatus { return c.verification }
func (c *Courier) CreatedAt() time.Time { return c.createdAt }
