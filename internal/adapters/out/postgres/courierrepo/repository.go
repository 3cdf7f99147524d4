package courierrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormCourierRepository struct {
	db *gorm.DB
}

func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

func (r *GormCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dto := fromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormCourierRepository) ExistsForUser(ctx context.Context, userID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CourierDTO{}).Where("user_id = ?", userID.Bytes()).Count(&count).Error
	return count > 0, err
}

func (r *GormCourierRepository) PhoneTaken(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CourierDTO{}).Where("phone = ?", phone).Count(&count).Error
	return count > 0, err
}
