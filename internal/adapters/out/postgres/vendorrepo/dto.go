// Package vendorrepo persists vendor profiles.
package vendorrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/vendor"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// VendorDTO is the vendor_profiles row. Service areas are a Postgres text[].
type VendorDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	BusinessName       string         `gorm:"size:255;not null"`
	BusinessCategory   string         `gorm:"size:100;not null"`
	BusinessAddress    string         `gorm:"size:255;not null"`
	Phone              string         `gorm:"size:16"`
	ServiceAreas       pq.StringArray `gorm:"type:text[]"`
	TimeZone           string         `gorm:"size:64;not null"`
	OffersDelivery     bool           `gorm:"not null;default:false"`
	VerificationStatus string         `gorm:"size:10;not null;default:pending"`
	CreatedAt          time.Time      `gorm:"not null;autoCreateTime:false"`
}

func (VendorDTO) TableName() string {
	return "vendor_profiles"
}

func fromDomain(v *vendor.Vendor) VendorDTO {
	p := v.Profile()
	return VendorDTO{
		ID:                 v.ID().Bytes(),
		UserID:             v.UserID().Bytes(),
		BusinessName:       p.BusinessName,
		BusinessCategory:   p.Category,
		BusinessAddress:    p.Address,
		Phone:              p.Phone,
		ServiceAreas:       pq.StringArray(p.ServiceAreas),
		TimeZone:           p.TimeZone,
		OffersDelivery:     p.OffersDelivery,
		VerificationStatus: string(v.Verification()),
		CreatedAt:          v.CreatedAt(),
	}
}

func toDomain(dto VendorDTO) (*vendor.Vendor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	return vendor.RestoreVendor(id, userID, vendor.Profile{
		BusinessName:   dto.BusinessName,
		Category:       dto.BusinessCategory,
		Address:        dto.BusinessAddress,
		Phone:          dto.Phone,
		ServiceAreas:   []string(dto.ServiceAreas),
		TimeZone:       dto.TimeZone,
		OffersDelivery: dto.OffersDelivery,
	}, vendor.VerificationStatus(dto.VerificationStatus), dto.CreatedAt)
}
