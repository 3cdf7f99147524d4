package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for a food order placed by a customer with a
// single vendor. It owns the lifecycle status and the timestamps recorded by
// each transition.
//
// Order follows these invariants:
//   - identifiers for the order, customer and vendor are valid
//   - at least one line item, and the total equals the sum of line totals
//   - payment_confirmed_at is set exactly when payment is confirmed
//   - user_receipt_confirmed_at is set exactly when receipt is confirmed
//   - delivered_at never follows user_receipt_confirmed_at
//   - status only changes through Apply, following a TransitionTable
type Order struct {
	id       kernel.UUID
	userID   kernel.UUID
	vendorID kernel.UUID

	items           []LineItem
	totalPrice      kernel.Money
	name            string
	deliveryAddress string

	status Status

	paymentConfirmed       bool
	paymentConfirmedAt     *time.Time
	userReceiptConfirmed   bool
	userReceiptConfirmedAt *time.Time

	placedAt         time.Time
	readyAt          *time.Time
	outForDeliveryAt *time.Time
	deliveredAt      *time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int

	events        []StatusChanged
	isConstructed bool
}

// NewOrder places a pending order. When name is blank it is generated from
// the dish names, see GenerateName.
//
// Example:
//
//	item, _ := order.NewLineItem(menuItemID, "Jollof Rice", kernel.MustMoney(250000), 2)
//	o, err := order.NewOrder(kernel.NewUUID(), userID, vendorID, "",
//	    "12 Allen Avenue, Ikeja", []order.LineItem{item}, time.Now())
func NewOrder(
	id, userID, vendorID kernel.UUID,
	name, deliveryAddress string,
	items []LineItem,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		version:       1,
		placedAt:      now,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIDs(id, userID, vendorID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	o.name = strings.TrimSpace(name)
	if o.name == "" {
		dishes := make([]string, len(o.items))
		for i, item := range o.items {
			dishes[i] = item.DishName
		}
		o.name = GenerateName(dishes)
	}

	return o, nil
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	ID                     kernel.UUID
	UserID                 kernel.UUID
	VendorID               kernel.UUID
	Items                  []LineItem
	TotalPrice             kernel.Money
	Name                   string
	DeliveryAddress        string
	Status                 Status
	PaymentConfirmed       bool
	PaymentConfirmedAt     *time.Time
	UserReceiptConfirmed   bool
	UserReceiptConfirmedAt *time.Time
	PlacedAt               time.Time
	ReadyAt                *time.Time
	OutForDeliveryAt       *time.Time
	DeliveredAt            *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
	Version                int
}

// RestoreOrder rehydrates an order from storage and re-checks every invariant,
// so a corrupted row surfaces as an error instead of an inconsistent aggregate.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		name:                   s.Name,
		status:                 s.Status,
		paymentConfirmed:       s.PaymentConfirmed,
		paymentConfirmedAt:     s.PaymentConfirmedAt,
		userReceiptConfirmed:   s.UserReceiptConfirmed,
		userReceiptConfirmedAt: s.UserReceiptConfirmedAt,
		placedAt:               s.PlacedAt,
		readyAt:                s.ReadyAt,
		outForDeliveryAt:       s.OutForDeliveryAt,
		deliveredAt:            s.DeliveredAt,
		createdAt:              s.CreatedAt,
		updatedAt:              s.UpdatedAt,
		version:                s.Version,
		isConstructed:          true,
	}

	problems := []error{
		o.setIDs(s.ID, s.UserID, s.VendorID),
		o.setItems(s.Items),
		o.setDeliveryAddress(s.DeliveryAddress),
		s.Status.Validate(),
	}
	if o.totalPrice != s.TotalPrice {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("total price",
			fmt.Errorf("%s does not match line items total %s", s.TotalPrice, o.totalPrice)))
	}
	if s.PaymentConfirmed != (s.PaymentConfirmedAt != nil) {
		problems = append(problems, errs.NewValueIsInvalidError("payment_confirmed_at must be set exactly when payment is confirmed"))
	}
	if s.UserReceiptConfirmed != (s.UserReceiptConfirmedAt != nil) {
		problems = append(problems, errs.NewValueIsInvalidError("user_receipt_confirmed_at must be set exactly when receipt is confirmed"))
	}
	if s.DeliveredAt != nil && s.UserReceiptConfirmedAt != nil && s.DeliveredAt.After(*s.UserReceiptConfirmedAt) {
		problems = append(problems, errs.NewValueIsInvalidError("delivered_at must not follow user_receipt_confirmed_at"))
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return o, nil
}

// Snapshot exports the current state for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                     o.id,
		UserID:                 o.userID,
		VendorID:               o.vendorID,
		Items:                  slices.Clone(o.items),
		TotalPrice:             o.totalPrice,
		Name:                   o.name,
		DeliveryAddress:        o.deliveryAddress,
		Status:                 o.status,
		PaymentConfirmed:       o.paymentConfirmed,
		PaymentConfirmedAt:     o.paymentConfirmedAt,
		UserReceiptConfirmed:   o.userReceiptConfirmed,
		UserReceiptConfirmedAt: o.userReceiptConfirmedAt,
		PlacedAt:               o.placedAt,
		ReadyAt:                o.readyAt,
		OutForDeliveryAt:       o.outForDeliveryAt,
		DeliveredAt:            o.deliveredAt,
		CreatedAt:              o.createdAt,
		UpdatedAt:              o.updatedAt,
		Version:                o.version,
	}
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) UserID() kernel.UUID { return o.userID }
func (o *Order) VendorID() kernel.UUID { return o.vendorID }
func (o *Order) Items() []LineItem { return slices.Clone(o.items) }
func (o *Order) TotalPrice() kernel.Money { return o.totalPrice }
func (o *Order) Name() string { return o.name }
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentConfirmed() bool { return o.paymentConfirmed }
func (o *Order) PaymentConfirmedAt() *time.Time { return o.paymentConfirmedAt }
func (o *Order) UserReceiptConfirmed() bool { return o.userReceiptConfirmed }
func (o *Order) UserReceiptConfirmedAt() *time.Time { return o.userReceiptConfirmedAt }
func (o *Order) PlacedAt() time.Time { return o.placedAt }
func (o *Order) ReadyAt() *time.Time { return o.readyAt }
func (o *Order) OutForDeliveryAt() *time.Time { return o.outForDeliveryAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Version is the optimistic concurrency token loaded from storage.
func (o *Order) Version() int { return o.version }

// Apply runs action against the order at time now.
//
// The action's flag guard is checked first, then the table. Any failure
// returns an error and leaves the order untouched. A now earlier than the
// latest recorded timestamp is rejected so lifecycle timestamps never go
// backwards.
//
// On success the status, the action's timestamp and updated_at are set, and a
// StatusChanged event is recorded.
func (o *Order) Apply(table TransitionTable, action Action, now time.Time) error {
	if err := table.Validate(); err != nil {
		return err
	}
	if !action.valid() {
		return errs.NewInvalidActionError(action.String())
	}
	if err := o.checkGuard(action); err != nil {
		return err
	}

	next, err := table.Next(o.status, action)
	if err != nil {
		return err
	}

	if last := o.lastEventAt(); now.Before(last) {
		return errs.NewValueIsInvalidErrorWithCause("transition time",
			fmt.Errorf("%s is before the last recorded event at %s", now.Format(time.RFC3339), last.Format(time.RFC3339)))
	}

	at := now
	switch action {
	case ActionConfirmPayment:
		o.paymentConfirmed = true
		o.paymentConfirmedAt = &at
	case ActionMarkReady:
		o.readyAt = &at
	case ActionMarkOutForDelivery:
		o.outForDeliveryAt = &at
	case ActionMarkDelivered:
		o.deliveredAt = &at
	case ActionConfirmReceipt:
		o.userReceiptConfirmed = true
		o.userReceiptConfirmedAt = &at
	}

	o.events = append(o.events, StatusChanged{
		OrderID:    o.id,
		UserID:     o.userID,
		VendorID:   o.vendorID,
		Action:     action.String(),
		From:       o.status.String(),
		To:         next.String(),
		OccurredAt: now,
	})
	o.status = next
	o.updatedAt = now
	return nil
}

func (o *Order) checkGuard(action Action) error {
	fail := func(reason string) error {
		return errs.NewInvalidTransitionError(action.String(), o.status.String(), reason)
	}

	switch action {
	case ActionConfirmPayment:
		if o.paymentConfirmed {
			return fail("payment is already confirmed")
		}
	case ActionStartProcessing, ActionMarkReady:
		if !o.paymentConfirmed {
			return fail("payment is not confirmed")
		}
	case ActionConfirmReceipt:
		if !o.paymentConfirmed {
			return fail("payment is not confirmed")
		}
		if o.userReceiptConfirmed {
			return fail("receipt is already confirmed")
		}
	}
	return nil
}

func (o *Order) lastEventAt() time.Time {
	last := o.placedAt
	for _, t := range []*time.Time{
		&o.updatedAt, o.paymentConfirmedAt, o.readyAt, o.outForDeliveryAt, o.deliveredAt, o.userReceiptConfirmedAt,
	} {
		if t != nil && t.After(last) {
			last = *t
		}
	}
	return last
}

func (o *Order) ConfirmPayment(now time.Time) error {
	return o.Apply(DefaultTransitionTable(), ActionConfirmPayment, now)
}

func (o *Order) StartProcessing(now time.Time) error {
	return o.Apply(DefaultTransitionTable(), ActionStartProcessing, now)
}

func (o *Order) MarkAsReady(now time.Time) error {
	return o.Apply(DefaultTransitionTable(), ActionMarkReady, now)
}

func (o *Order) MarkOutForDelivery(now time.Time) error {
	return o.Apply(DefaultTransitionTable(), ActionMarkOutForDelivery, now)
}

func (o *Order) MarkAsDelivered(now time.Time) error {
	return o.Apply(DefaultTransitionTable(), ActionMarkDelivered, now)
}

func (o *Order) ConfirmUserReceipt(now time.Time) error {
	return o.Apply(DefaultTransitionTable(), ActionConfirmReceipt, now)
}

// Cancel and Reject take the table explicitly; the default table grants no
// entry points for either.
func (o *Order) Cancel(table TransitionTable, now time.Time) error {
	return o.Apply(table, ActionCancel, now)
}

func (o *Order) Reject(table TransitionTable, now time.Time) error {
	return o.Apply(table, ActionReject, now)
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}

// IsPendingConfirmation reports a paid order waiting for the customer to
// confirm receipt.
func (o *Order) IsPendingConfirmation() bool {
	return o.paymentConfirmed && !o.userReceiptConfirmed && (o.status == Ready || o.status == Delivered)
}

// DeliveryTimeMinutes is the whole minutes between placement and delivery.
func (o *Order) DeliveryTimeMinutes() (int, bool) {
	if o.deliveredAt == nil {
		return 0, false
	}
	return int(o.deliveredAt.Sub(o.placedAt) / time.Minute), true
}

// TimeSinceDelivered is the whole minutes elapsed since delivery.
func (o *Order) TimeSinceDelivered(now time.Time) (int, bool) {
	if o.deliveredAt == nil {
		return 0, false
	}
	return int(now.Sub(*o.deliveredAt) / time.Minute), true
}

func (o *Order) setIDs(id, userID, vendorID kernel.UUID) error {
	var problems []error
	for _, f := range []struct {
		name string
		id   kernel.UUID
	}{{"order id", id}, {"user id", userID}, {"vendor id", vendorID}} {
		if err := f.id.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(f.name, err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.id, o.userID, o.vendorID = id, userID, vendorID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	o.totalPrice = sumItems(o.items)
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}
