// Package userrepo reads the users table owned by the authentication service.
package userrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"size:150;not null;uniqueIndex"`
	FirstName string    `gorm:"size:150"`
	LastName  string    `gorm:"size:150"`
	Email     string    `gorm:"size:254"`
}

func (UserDTO) TableName() string {
	return "users"
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (identity.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.User{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return identity.User{}, err
	}
	return identity.User{
		ID:        id,
		Username:  dto.Username,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
	}, nil
}
