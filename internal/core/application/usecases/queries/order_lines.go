package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderLine is a line item as it was priced when the order was placed.
type OrderLine struct {
	MenuItemID kernel.UUID
	DishName   string
	UnitPrice  kernel.Money
	Quantity   int
}

// loadOrderLines fetches the lines of the given orders in their stored order.
func loadOrderLines(ctx context.Context, db *gorm.DB, orderIDs []uuid.UUID) (map[uuid.UUID][]OrderLine, error) {
	lines := make(map[uuid.UUID][]OrderLine, len(orderIDs))
	if len(orderIDs) == 0 {
		return lines, nil
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT order_id, menu_item_id, dish_name, unit_price, quantity
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, menuItemID uuid.UUID
			line                OrderLine
			unitPrice           int64
		)
		if err = rows.Scan(&orderID, &menuItemID, &line.DishName, &unitPrice, &line.Quantity); err != nil {
			return nil, err
		}
		if line.MenuItemID, err = fromUUID(menuItemID); err != nil {
			return nil, err
		}
		if line.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return nil, err
		}
		lines[orderID] = append(lines[orderID], line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
