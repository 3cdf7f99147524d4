package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending -> PaymentConfirmed -> Processing -> Ready -> OutForDelivery -> Delivered -> Completed
//
// Processing may be skipped (PaymentConfirmed -> Ready), and a Ready order
// picked up by the customer may be completed directly (Ready -> Completed).
//
// Cancelled and Rejected are terminal side exits; which states may enter them
// is decided by the TransitionTable in use. Completed, Cancelled and Rejected
// are terminal. Statuses are persisted as their lower_snake_case codes.
type Status int

const (
	// Unknown (0) catches uninitialised values.
	Unknown Status = iota
	Pending
	PaymentConfirmed
	Processing
	Ready
	OutForDelivery
	Delivered
	Completed
	Cancelled
	Rejected
)

var statusCodes = map[Status]string{
	Pending:          "pending",
	PaymentConfirmed: "payment_confirmed",
	Processing:       "processing",
	Ready:            "ready",
	OutForDelivery:   "out_for_delivery",
	Delivered:        "delivered",
	Completed:        "completed",
	Cancelled:        "cancelled",
	Rejected:         "rejected",
}

// mainPathRank orders the statuses of the happy path; side exits are absent.
var mainPathRank = map[Status]int{
	Pending:          0,
	PaymentConfirmed: 1,
	Processing:       2,
	Ready:            3,
	OutForDelivery:   4,
	Delivered:        5,
	Completed:        6,
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, PaymentConfirmed, Processing, Ready, OutForDelivery, Delivered, Completed, Cancelled, Rejected}
}

// StatusFromCode parses a persisted or wire status code.
func StatusFromCode(code string) (Status, error) {
	for s, c := range statusCodes {
		if c == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", code))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusCodes[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status code, or "unknown" for invalid values.
func (s Status) String() string {
	if c, ok := statusCodes[s]; ok {
		return c
	}
	return "unknown"
}

// IsTerminal reports whether no action may leave s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Rejected
}
