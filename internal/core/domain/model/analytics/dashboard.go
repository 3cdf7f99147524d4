package analytics

import "marketplace/internal/core/domain/model/kernel"

// Figures is an order count and the sales they add up to.
type Figures struct {
	Orders int64
	Sales  kernel.Money
}

// ChartDay is one calendar day of the sales chart.
type ChartDay struct {
	Window
	Figures
}

// DashboardFacts are the raw aggregates a vendor dashboard is built from.
// AverageDeliveryMinutes is nil when no order has a measured delivery.
type DashboardFacts struct {
	AllTime                Figures
	Today                  Figures
	Yesterday              Figures
	ThisWeek               Figures
	LastWeek               Figures
	Pending                int64
	PendingYesterday       int64
	AverageDeliveryMinutes *float64
	Chart                  []ChartDay
}

type ChartEntry struct {
	Label  string  `json:"label"`
	Sales  float64 `json:"sales"`
	Orders int64   `json:"orders"`
}

type PeriodTrends struct {
	Daily  Trend `json:"daily"`
	Weekly Trend `json:"weekly"`
}

type DailyTrend struct {
	Daily Trend `json:"daily"`
}

type Changes struct {
	Orders  PeriodTrends `json:"orders"`
	Sales   PeriodTrends `json:"sales"`
	Pending DailyTrend   `json:"pending"`
}

// Dashboard is the vendor dashboard card set. Amounts are in major units.
type Dashboard struct {
	TotalOrders            int64        `json:"total_orders"`
	TodaysOrder            int64        `json:"todays_order"`
	TodaysSales            float64      `json:"todays_sales"`
	TotalSales             float64      `json:"total_sales"`
	TotalPending           int64        `json:"total_pending"`
	AverageDeliveryMinutes int          `json:"average_delivery_minutes"`
	DeliveryTime           string       `json:"delivery_time"`
	SalesChart             []ChartEntry `json:"sales_chart"`
	PercentageChanges      Changes      `json:"percentage_changes"`
}

// BuildDashboard derives trends, the delivery estimate and chart labels from f.
// Pending today is compared with the pending orders created yesterday.
func BuildDashboard(f DashboardFacts) Dashboard {
	minutes, estimate := DeliveryTime(f.AverageDeliveryMinutes)

	chart := make([]ChartEntry, 0, len(f.Chart))
	for _, day := range f.Chart {
		chart = append(chart, ChartEntry{
			Label:  ChartLabel(day.Window),
			Sales:  day.Sales.Major(),
			Orders: day.Orders,
		})
	}

	return Dashboard{
		TotalOrders:            f.AllTime.Orders,
		TodaysOrder:            f.Today.Orders,
		TodaysSales:            f.Today.Sales.Major(),
		TotalSales:             f.AllTime.Sales.Major(),
		TotalPending:           f.Pending,
		AverageDeliveryMinutes: minutes,
		DeliveryTime:           estimate,
		SalesChart:             chart,
		PercentageChanges: Changes{
			Orders: PeriodTrends{
				Daily:  NewTrend(float64(f.Today.Orders), float64(f.Yesterday.Orders), SinceYesterday),
				Weekly: NewTrend(float64(f.ThisWeek.Orders), float64(f.LastWeek.Orders), SinceLastWeek),
			},
			Sales: PeriodTrends{
				Daily:  NewTrend(float64(f.Today.Sales.Minor()), float64(f.Yesterday.Sales.Minor()), SinceYesterday),
				Weekly: NewTrend(float64(f.ThisWeek.Sales.Minor()), float64(f.LastWeek.Sales.Minor()), SinceLastWeek),
			},
			Pending: DailyTrend{
				Daily: NewTrend(float64(f.Pending), float64(f.PendingYesterday), SinceYesterday),
			},
		},
	}
}

// DishStat is one entry of the top dishes ranking.
type DishStat struct {
	MenuItemID kernel.UUID
	DishName   string
	Orders     int64
	Revenue    kernel.Money
	Change     float64
}

// TopDishesLimit caps the top dishes ranking.
const TopDishesLimit = 3

// Activity is a week's order outcome summary.
type Activity struct {
	Total              int64
	Completed          int64
	Rejected           int64
	TotalRevenue       kernel.Money
	CompletedChangePct float64
	RejectedChangePct  float64
}
