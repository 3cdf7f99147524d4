package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/analytics"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// An order counts once per dish however many lines mention it. Revenue is the
// sum of line totals, not of order totals.
const topDishesSQL = `
	WITH this_week AS (
		SELECT
			oi.menu_item_id,
			MIN(oi.dish_name) AS dish_name,
			COUNT(DISTINCT o.id) AS orders,
			SUM(oi.unit_price * oi.quantity)::bigint AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE (@platform OR o.vendor_id = @vendor_id)
			AND o.order_placed_at >= @start AND o.order_placed_at < @end
		GROUP BY oi.menu_item_id
	), last_week AS (
		SELECT oi.menu_item_id, COUNT(DISTINCT o.id) AS orders
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE (@platform OR o.vendor_id = @vendor_id)
			AND o.order_placed_at >= @prev_start AND o.order_placed_at < @prev_end
		GROUP BY oi.menu_item_id
	)
	SELECT t.menu_item_id, t.dish_name, t.orders, t.revenue, COALESCE(l.orders, 0)
	FROM this_week t
	LEFT JOIN last_week l ON l.menu_item_id = t.menu_item_id
	ORDER BY t.orders DESC, t.menu_item_id ASC
	LIMIT @limit`

type GetTopDishesQueryHandler struct {
	db         *gorm.DB
	defaultLoc *time.Location
}

// NewGetTopDishesQueryHandler evaluates platform-wide weeks in defaultLoc.
func NewGetTopDishesQueryHandler(db *gorm.DB, defaultLoc *time.Location) GetTopDishesQueryHandler {
	return GetTopDishesQueryHandler{db: db, defaultLoc: defaultLoc}
}

func (h GetTopDishesQueryHandler) Handle(ctx context.Context, query GetTopDishesQuery) ([]analytics.DishStat, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	loc, err := scopeLocation(ctx, h.db, query.scope, h.defaultLoc)
	if err != nil {
		return nil, err
	}
	week := analytics.CalendarWeek(query.now, loc)
	prev := analytics.PreviousCalendarWeek(query.now, loc)

	args := query.scope.sqlArgs()
	args["start"], args["end"] = week.Start, week.End
	args["prev_start"], args["prev_end"] = prev.Start, prev.End
	args["limit"] = analytics.TopDishesLimit

	rows, err := h.db.WithContext(ctx).Raw(topDishesSQL, args).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := make([]analytics.DishStat, 0, analytics.TopDishesLimit)
	for rows.Next() {
		var (
			id         uuid.UUID
			dish       analytics.DishStat
			revenue    int64
			lastOrders int64
		)
		if err = rows.Scan(&id, &dish.DishName, &dish.Orders, &revenue, &lastOrders); err != nil {
			return nil, err
		}
		if dish.MenuItemID, err = fromUUID(id); err != nil {
			return nil, err
		}
		if dish.Revenue, err = kernel.NewMoney(revenue); err != nil {
			return nil, err
		}
		dish.Change = analytics.RoundedChange(float64(dish.Orders), float64(lastOrders))
		dishes = append(dishes, dish)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return dishes, nil
}
