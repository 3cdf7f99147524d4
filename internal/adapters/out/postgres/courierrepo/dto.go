// Package courierrepo persists courier profiles.
package courierrepo

import (
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CourierDTO is the courier_profiles row. Working hours are stored as the
// "HH:MM" text the courier entered.
type CourierDTO struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID                 uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Phone                  string         `gorm:"size:16;not null;uniqueIndex"`
	ServiceAreas           pq.StringArray `gorm:"type:text[]"`
	DeliveryRadius         string         `gorm:"size:50;not null"`
	OpeningHours           string         `gorm:"size:5;not null"`
	ClosingHours           string         `gorm:"size:5;not null"`
	HasBike                bool           `gorm:"not null;default:false"`
	VehicleType            string         `gorm:"size:20"`
	VerificationPreference string         `gorm:"size:50;not null"`
	NINNumber              string         `gorm:"column:nin_number;size:20"`
	AgreedToTerms          bool           `gorm:"not null;default:false"`
	VerificationStatus     string         `gorm:"size:10;not null;default:pending"`
	CreatedAt              time.Time      `gorm:"not null;autoCreateTime:false"`
}

func (CourierDTO) TableName() string {
	return "courier_profiles"
}

func fromDomain(c *courier.Courier) CourierDTO {
	p := c.Profile()
	return CourierDTO{
		ID:                     c.ID().Bytes(),
		UserID:                 c.UserID().Bytes(),
		Phone:                  p.Phone,
		ServiceAreas:           pq.StringArray(p.ServiceAreas),
		DeliveryRadius:         p.DeliveryRadius,
		OpeningHours:           p.OpeningHours,
		ClosingHours:           p.ClosingHours,
		HasBike:                p.HasBike,
		VehicleType:            string(p.VehicleType),
		VerificationPreference: string(p.VerificationPreference),
		NINNumber:              p.NINNumber,
		AgreedToTerms:          p.AgreedToTerms,
		VerificationStatus:     string(c.Verification()),
		CreatedAt:              c.CreatedAt(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	return courier.RestoreCourier(id, userID, courier.Profile{
		Phone:                  dto.Phone,
		ServiceAreas:           []string(dto.ServiceAreas),
		DeliveryRadius:         dto.DeliveryRadius,
		OpeningHours:           dto.OpeningHours,
		ClosingHours:           dto.ClosingHours,
		HasBike:                dto.HasBike,
		VehicleType:            courier.VehicleType(dto.VehicleType),
		VerificationPreference: courier.Document(dto.VerificationPreference),
		NINNumber:              dto.NINNumber,
		AgreedToTerms:          dto.AgreedToTerms,
	}, courier.VerificationStatus(dto.VerificationStatus), dto.CreatedAt)
}
