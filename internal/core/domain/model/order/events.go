package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// EventStatusChanged is the outbox event type written for every transition.
const EventStatusChanged = "order.status_changed"

// StatusChanged is recorded by Order.Apply and drained by the repository
// into the outbox in the same transaction as the order update.
type StatusChanged struct {
	OrderID    kernel.UUID `json:"order_id"`
	UserID     kernel.UUID `json:"user_id"`
	VendorID   kernel.UUID `json:"vendor_id"`
	Action     string      `json:"action"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	OccurredAt time.Time   `json:"occurred_at"`
}
