package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetMenuItemQueryHandler struct {
	db *gorm.DB
}

func NewGetMenuItemQueryHandler(db *gorm.DB) GetMenuItemQueryHandler {
	return GetMenuItemQueryHandler{db: db}
}

// Handle returns the item, or ObjectNotFound when it was removed or belongs
// to another vendor.
func (h GetMenuItemQueryHandler) Handle(ctx context.Context, query GetMenuItemQuery) (MenuItem, error) {
	if err := query.Validate(); err != nil {
		return MenuItem{}, err
	}

	var (
		id    uuid.UUID
		price int64
		item  MenuItem
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, dish_name, COALESCE(item_description, ''), price, category, quantity, available_now
		FROM menu_items
		WHERE id = ? AND vendor_id = ? AND deleted_at IS NULL
	`, query.itemID.Bytes(), query.vendorID.Bytes()).Row().
		Scan(&id, &item.DishName, &item.Description, &price, &item.Category, &item.Quantity, &item.AvailableNow)
	if errors.Is(err, sql.ErrNoRows) {
		return MenuItem{}, errs.NewObjectNotFoundError("menu item", query.itemID.String())
	}
	if err != nil {
		return MenuItem{}, err
	}

	if item.ID, err = fromUUID(id); err != nil {
		return MenuItem{}, err
	}
	if item.Price, err = kernel.NewMoney(price); err != nil {
		return MenuItem{}, err
	}
	return item, nil
}
