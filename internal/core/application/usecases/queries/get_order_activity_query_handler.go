package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/analytics"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

const orderActivitySQL = `
	SELECT
		COUNT(*) FILTER (WHERE o.order_placed_at >= @start AND o.order_placed_at < @end),
		COUNT(*) FILTER (WHERE o.status = @completed AND o.order_placed_at >= @start AND o.order_placed_at < @end),
		COUNT(*) FILTER (WHERE o.status = @rejected AND o.order_placed_at >= @start AND o.order_placed_at < @end),
		COALESCE(SUM(o.total_price) FILTER (WHERE o.order_placed_at >= @start AND o.order_placed_at < @end), 0)::bigint,
		COUNT(*) FILTER (WHERE o.status = @completed AND o.order_placed_at >= @prev_start AND o.order_placed_at < @prev_end),
		COUNT(*) FILTER (WHERE o.status = @rejected AND o.order_placed_at >= @prev_start AND o.order_placed_at < @prev_end)
	FROM orders o
	WHERE (@platform OR o.vendor_id = @vendor_id)`

type GetOrderActivityQueryHandler struct {
	db         *gorm.DB
	defaultLoc *time.Location
}

func NewGetOrderActivityQueryHandler(db *gorm.DB, defaultLoc *time.Location) GetOrderActivityQueryHandler {
	return GetOrderActivityQueryHandler{db: db, defaultLoc: defaultLoc}
}

func (h GetOrderActivityQueryHandler) Handle(ctx context.Context, query GetOrderActivityQuery) (analytics.Activity, error) {
	if err := query.Validate(); err != nil {
		return analytics.Activity{}, err
	}

	loc, err := scopeLocation(ctx, h.db, query.scope, h.defaultLoc)
	if err != nil {
		return analytics.Activity{}, err
	}
	week := analytics.CalendarWeek(query.now, loc)
	prev := analytics.PreviousCalendarWeek(query.now, loc)

	args := query.scope.sqlArgs()
	args["start"], args["end"] = week.Start, week.End
	args["prev_start"], args["prev_end"] = prev.Start, prev.End
	args["completed"] = order.Completed.String()
	args["rejected"] = order.Rejected.String()

	var (
		activity                    analytics.Activity
		revenue                     int64
		lastCompleted, lastRejected int64
	)
	err = h.db.WithContext(ctx).Raw(orderActivitySQL, args).Row().Scan(
		&activity.Total, &activity.Completed, &activity.Rejected, &revenue,
		&lastCompleted, &lastRejected,
	)
	if err != nil {
		return analytics.Activity{}, err
	}

	if activity.TotalRevenue, err = kernel.NewMoney(revenue); err != nil {
		return analytics.Activity{}, err
	}
	activity.CompletedChangePct = analytics.RoundedChange(float64(activity.Completed), float64(lastCompleted))
	activity.RejectedChangePct = analytics.RoundedChange(float64(activity.Rejected), float64(lastRejected))

	return activity, nil
}
