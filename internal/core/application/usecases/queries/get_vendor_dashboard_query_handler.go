package queries

import (
	"context"
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/analytics"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// Windows are compared against created_at. Pending orders are paid, not
// yet confirmed by the customer, and ready or delivered.
const dashboardTotalsSQL = `
	SELECT
		COUNT(*),
		COALESCE(SUM(total_price), 0)::bigint,
		COUNT(*) FILTER (WHERE created_at >= @today_start AND created_at < @today_end),
		COALESCE(SUM(total_price) FILTER (WHERE created_at >= @today_start AND created_at < @today_end), 0)::bigint,
		COUNT(*) FILTER (WHERE created_at >= @yesterday_start AND created_at < @yesterday_end),
		COALESCE(SUM(total_price) FILTER (WHERE created_at >= @yesterday_start AND created_at < @yesterday_end), 0)::bigint,
		COUNT(*) FILTER (WHERE created_at >= @week_start AND created_at < @week_end),
		COALESCE(SUM(total_price) FILTER (WHERE created_at >= @week_start AND created_at < @week_end), 0)::bigint,
		COUNT(*) FILTER (WHERE created_at >= @last_week_start AND created_at < @last_week_end),
		COALESCE(SUM(total_price) FILTER (WHERE created_at >= @last_week_start AND created_at < @last_week_end), 0)::bigint,
		COUNT(*) FILTER (WHERE payment_confirmed AND NOT user_receipt_confirmed AND status IN @pending_statuses),
		COUNT(*) FILTER (WHERE payment_confirmed AND NOT user_receipt_confirmed AND status IN @pending_statuses
			AND created_at >= @yesterday_start AND created_at < @yesterday_end),
		(AVG(EXTRACT(EPOCH FROM delivered_at - order_placed_at) / 60)
			FILTER (WHERE user_receipt_confirmed AND delivered_at IS NOT NULL))::float8
	FROM orders
	WHERE vendor_id = @vendor_id`

const dashboardChartSQL = `
	SELECT
		EXTRACT(DAY FROM created_at AT TIME ZONE @tz)::int,
		COUNT(*),
		COALESCE(SUM(total_price), 0)::bigint
	FROM orders
	WHERE vendor_id = @vendor_id AND created_at >= @start AND created_at < @end
	GROUP BY 1`

// GetVendorDashboardQueryHandler aggregates a vendor's orders into dashboard
// figures. Day boundaries follow the vendor's configured time zone.
type GetVendorDashboardQueryHandler struct {
	db *gorm.DB
}

func NewGetVendorDashboardQueryHandler(db *gorm.DB) GetVendorDashboardQueryHandler {
	return GetVendorDashboardQueryHandler{db: db}
}

func (h GetVendorDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetVendorDashboardQuery,
) (analytics.Dashboard, error) {
	if err := query.Validate(); err != nil {
		return analytics.Dashboard{}, err
	}

	loc, err := vendorLocation(ctx, h.db, query.vendorID)
	if err != nil {
		return analytics.Dashboard{}, err
	}

	year, month := query.chartMonth(loc)
	chartDays, err := analytics.MonthDays(year, month, loc)
	if err != nil {
		return analytics.Dashboard{}, err
	}

	facts, err := h.totals(ctx, query, loc)
	if err != nil {
		return analytics.Dashboard{}, err
	}

	facts.Chart, err = h.chart(ctx, query.vendorID, chartDays, loc)
	if err != nil {
		return analytics.Dashboard{}, err
	}

	return analytics.BuildDashboard(facts), nil
}

func (h GetVendorDashboardQueryHandler) totals(
	ctx context.Context,
	query GetVendorDashboardQuery,
	loc *time.Location,
) (analytics.DashboardFacts, error) {
	today := analytics.Day(query.now, loc)
	yesterday := analytics.Yesterday(query.now, loc)
	week := analytics.RollingWeek(query.now, loc)
	lastWeek := analytics.PreviousRollingWeek(query.now, loc)

	args := map[string]any{
		"vendor_id":        query.vendorID.Bytes(),
		"today_start":      today.Start,
		"today_end":        today.End,
		"yesterday_start":  yesterday.Start,
		"yesterday_end":    yesterday.End,
		"week_start":       week.Start,
		"week_end":         week.End,
		"last_week_start":  lastWeek.Start,
		"last_week_end":    lastWeek.End,
		"pending_statuses": []string{order.Ready.String(), order.Delivered.String()},
	}

	var (
		facts       analytics.DashboardFacts
		sales       [5]int64
		avgDelivery sql.NullFloat64
	)
	row := h.db.WithContext(ctx).Raw(dashboardTotalsSQL, args).Row()
	err := row.Scan(
		&facts.AllTime.Orders, &sales[0],
		&facts.Today.Orders, &sales[1],
		&facts.Yesterday.Orders, &sales[2],
		&facts.ThisWeek.Orders, &sales[3],
		&facts.LastWeek.Orders, &sales[4],
		&facts.Pending, &facts.PendingYesterday,
		&avgDelivery,
	)
	if err != nil {
		return analytics.DashboardFacts{}, err
	}

	figures := []*analytics.Figures{&facts.AllTime, &facts.Today, &facts.Yesterday, &facts.ThisWeek, &facts.LastWeek}
	for i, f := range figures {
		if f.Sales, err = kernel.NewMoney(sales[i]); err != nil {
			return analytics.DashboardFacts{}, err
		}
	}

	if avgDelivery.Valid {
		facts.AverageDeliveryMinutes = &avgDelivery.Float64
	}
	return facts, nil
}

func (h GetVendorDashboardQueryHandler) chart(
	ctx context.Context,
	vendorID kernel.UUID,
	days []analytics.Window,
	loc *time.Location,
) ([]analytics.ChartDay, error) {
	chart := make([]analytics.ChartDay, len(days))
	for i, w := range days {
		chart[i].Window = w
	}
	if len(days) == 0 {
		return chart, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(dashboardChartSQL, map[string]any{
		"tz":        loc.String(),
		"vendor_id": vendorID.Bytes(),
		"start":     days[0].Start,
		"end":       days[len(days)-1].End,
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			day    int
			orders int64
			sales  int64
		)
		if err = rows.Scan(&day, &orders, &sales); err != nil {
			return nil, err
		}
		if day < 1 || day > len(chart) {
			continue
		}
		money, moneyErr := kernel.NewMoney(sales)
		if moneyErr != nil {
			return nil, moneyErr
		}
		chart[day-1].Figures = analytics.Figures{Orders: orders, Sales: money}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return chart, nil
}
