package analytics

import (
	"fmt"
	"math"
)

// Period names the comparison baseline in trend texts.
type Period string

const (
	SinceYesterday Period = "yesterday"
	SinceLastWeek  Period = "last week"
)

// PercentageChange is (current-previous)/previous*100. With no previous
// value it is 100 when current is positive and 0 otherwise.
func PercentageChange(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}

// RoundedChange is PercentageChange rounded to two decimals.
func RoundedChange(current, previous float64) float64 {
	return math.Round(PercentageChange(current, previous)*100) / 100
}

// Trend is a percentage change as shown on the dashboard cards.
type Trend struct {
	Value     float64 `json:"value"`
	Direction string  `json:"direction"`
	Text      string  `json:"text"`
}

// NewTrend renders e.g. "12.5% Down from last week". Zero counts as up.
func NewTrend(current, previous float64, period Period) Trend {
	v := PercentageChange(current, previous)
	direction, word := "up", "Up"
	if v < 0 {
		direction, word = "down", "Down"
	}
	return Trend{
		Value:     v,
		Direction: direction,
		Text:      fmt.Sprintf("%.1f%% %s from %s", math.Abs(v), word, period),
	}
}

// DefaultDeliveryMinutes is reported when no order has a measured delivery.
const DefaultDeliveryMinutes = 15

// DeliveryTime turns an average delivery duration into the "{m}-{m+5}mins"
// estimate. A nil average falls back to DefaultDeliveryMinutes.
func DeliveryTime(avgMinutes *float64) (int, string) {
	m := DefaultDeliveryMinutes
	if avgMinutes != nil {
		m = int(*avgMinutes)
	}
	return m, fmt.Sprintf("%d-%dmins", m, m+5)
}

// ChartLabel renders a sales chart label such as "7 Mar".
func ChartLabel(w Window) string {
	return w.Start.Format("2 Jan")
}
