package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListMenuItemsQueryHandler struct {
	db *gorm.DB
}

func NewListMenuItemsQueryHandler(db *gorm.DB) ListMenuItemsQueryHandler {
	return ListMenuItemsQueryHandler{db: db}
}

// Handle returns the menu sorted by category, then dish name.
func (h ListMenuItemsQueryHandler) Handle(ctx context.Context, query ListMenuItemsQuery) ([]MenuItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, dish_name, COALESCE(item_description, ''), price, category, quantity, available_now
		FROM menu_items
		WHERE vendor_id = ? AND deleted_at IS NULL
		ORDER BY category, dish_name, id
	`, query.vendorID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]MenuItem, 0)
	for rows.Next() {
		var (
			id    uuid.UUID
			price int64
			item  MenuItem
		)
		err = rows.Scan(&id, &item.DishName, &item.Description, &price, &item.Category, &item.Quantity, &item.AvailableNow)
		if err != nil {
			return nil, err
		}
		if item.ID, err = fromUUID(id); err != nil {
			return nil, err
		}
		if item.Price, err = kernel.NewMoney(price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
