package vendorrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormVendorRepository struct {
	db *gorm.DB
}

func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

func (r *GormVendorRepository) Add(ctx context.Context, v *vendor.Vendor) error {
	if err := v.Validate(); err != nil {
		return err
	}
	dto := fromDomain(v)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormVendorRepository) Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VendorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vendor", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormVendorRepository) ExistsForUser(ctx context.Context, userID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&VendorDTO{}).Where("user_id = ?", userID.Bytes()).Count(&count).Error
	return count > 0, err
}
