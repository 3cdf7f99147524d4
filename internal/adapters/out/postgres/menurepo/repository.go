// Package menurepo persists vendor menu items.
package menurepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MenuItemDTO is the menu_items row. Removed items are soft-deleted and
// hidden from every GORM query.
type MenuItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID        uuid.UUID `gorm:"type:uuid;not null;index"`
	DishName        string    `gorm:"size:255;not null"`
	ItemDescription string
	Price           int64          `gorm:"not null"`
	Category        string         `gorm:"size:100;not null"`
	Quantity        int            `gorm:"not null;default:0"`
	AvailableNow    bool           `gorm:"not null"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

func (r *GormMenuRepository) Add(ctx context.Context, item *menu.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	dto := fromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormMenuRepository) GetForUpdate(ctx context.Context, id, vendorID kernel.UUID) (*menu.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MenuItemDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vendor_id = ?", vendorID.Bytes()).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menu item", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormMenuRepository) Update(ctx context.Context, item *menu.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&MenuItemDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"dish_name":        dto.DishName,
		"item_description": dto.ItemDescription,
		"price":            dto.Price,
		"category":         dto.Category,
		"quantity":         dto.Quantity,
		"available_now":    dto.AvailableNow,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menu item", item.ID().String())
	}
	return nil
}

// Remove soft-deletes the item. Placed orders keep their own line snapshots.
func (r *GormMenuRepository) Remove(ctx context.Context, id, vendorID kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID.Bytes()).
		Delete(&MenuItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menu item", id.String())
	}
	return nil
}

func (r *GormMenuRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		raw[i] = id.Bytes()
	}

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*menu.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func fromDomain(item *menu.Item) MenuItemDTO {
	return MenuItemDTO{
		ID:              item.ID().Bytes(),
		VendorID:        item.VendorID().Bytes(),
		DishName:        item.DishName(),
		ItemDescription: item.Description(),
		Price:           item.Price().Minor(),
		Category:        item.Category(),
		Quantity:        item.Quantity(),
		AvailableNow:    item.AvailableNow(),
	}
}

func toDomain(dto MenuItemDTO) (*menu.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return menu.RestoreItem(id, vendorID, menu.Details{
		DishName:     dto.DishName,
		Description:  dto.ItemDescription,
		Price:        price,
		Category:     dto.Category,
		Quantity:     dto.Quantity,
		AvailableNow: dto.AvailableNow,
	})
}
