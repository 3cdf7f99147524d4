// Package bookingrepo persists accommodation bookings.
package bookingrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/booking"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccommodationDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"size:255;not null"`
	AccommodationType string    `gorm:"size:20;not null;default:hotel"`
	Address           string    `gorm:"size:255"`
	City              string    `gorm:"size:100"`
	State             string    `gorm:"size:100"`
	IsActive          bool      `gorm:"not null"`
}

func (AccommodationDTO) TableName() string {
	return "accommodations"
}

type BookingDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	AccommodationID uuid.UUID `gorm:"type:uuid;not null;index"`
	BookingDate     time.Time `gorm:"type:date;not null"`
	BookingTime     string    `gorm:"size:5;not null"`
	NumberOfPeople  int       `gorm:"not null"`
	RoomType        string    `gorm:"size:100"`
	SpecialRequests string
	Status          string    `gorm:"size:20;not null;default:pending"`
	CreatedAt       time.Time `gorm:"not null;index;autoCreateTime:false"`
}

func (BookingDTO) TableName() string {
	return "bookings"
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Add(ctx context.Context, b *booking.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	req := b.Request()
	dto := BookingDTO{
		ID:              b.ID().Bytes(),
		UserID:          b.UserID().Bytes(),
		AccommodationID: req.AccommodationID.Bytes(),
		BookingDate:     req.Date,
		BookingTime:     req.Time,
		NumberOfPeople:  req.NumberOfPeople,
		RoomType:        req.RoomType,
		SpecialRequests: req.SpecialRequests,
		Status:          string(b.Status()),
		CreatedAt:       b.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormBookingRepository) AccommodationIsActive(ctx context.Context, accommodationID kernel.UUID) (bool, error) {
	var dto AccommodationDTO
	err := r.db.WithContext(ctx).Select("id", "is_active").First(&dto, "id = ?", accommodationID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.NewObjectNotFoundError("accommodation", accommodationID.String())
		}
		return false, err
	}
	return dto.IsActive, nil
}
