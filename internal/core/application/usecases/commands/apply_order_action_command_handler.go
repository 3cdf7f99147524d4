package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

var actionMessages = map[order.Action]string{
	order.ActionConfirmPayment:     "Payment confirmed successfully.",
	order.ActionStartProcessing:    "Order is now being processed.",
	order.ActionMarkReady:          "Order marked as ready for pickup/delivery.",
	order.ActionMarkOutForDelivery: "Order marked as out for delivery.",
	order.ActionMarkDelivered:      "Order marked as delivered.",
	order.ActionConfirmReceipt:     "Order receipt confirmed successfully.",
	order.ActionCancel:             "Order cancelled.",
	order.ActionReject:             "Order rejected.",
}

// ApplyOrderActionResult describes the order after a successful action.
type ApplyOrderActionResult struct {
	OrderID   kernel.UUID
	Status    order.Status
	UpdatedAt time.Time
	Message   string
}

// ApplyOrderActionCommandHandler performs role-scoped lifecycle actions.
//
// Resolution order: the caller's role is checked against the action
// (customers confirm receipt, vendors do everything else), then the order is
// loaded FOR UPDATE within the caller's scope, then the domain guard and the
// transition table decide. The write is a version compare-and-swap in the
// same transaction, so concurrent requests for the same order serialize and
// at most one of two identical actions succeeds.
type ApplyOrderActionCommandHandler struct {
	uowFactory OrderUoWFactory
	table      order.TransitionTable
	clock      ports.Clock
}

func NewApplyOrderActionCommandHandler(
	uowFactory OrderUoWFactory,
	table order.TransitionTable,
	clock ports.Clock,
) ApplyOrderActionCommandHandler {
	return ApplyOrderActionCommandHandler{
		uowFactory: uowFactory,
		table:      table,
		clock:      clock,
	}
}

func (h *ApplyOrderActionCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyOrderActionCommand,
) (ApplyOrderActionResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyOrderActionResult{}, err
	}

	if err := authorize(cmd.Principal(), cmd.Action()); err != nil {
		return ApplyOrderActionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ApplyOrderActionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID(), cmd.Principal())
	if err != nil {
		return ApplyOrderActionResult{}, err
	}

	if err = o.Apply(h.table, cmd.Action(), h.clock.Now()); err != nil {
		return ApplyOrderActionResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ApplyOrderActionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ApplyOrderActionResult{}, err
	}

	return ApplyOrderActionResult{
		OrderID:   o.ID(),
		Status:    o.Status(),
		UpdatedAt: o.UpdatedAt(),
		Message:   actionMessages[cmd.Action()],
	}, nil
}

func authorize(p identity.Principal, action order.Action) error {
	operation := action.String() + " order"
	if action.IsCustomerAction() {
		_, err := identity.AsCustomer(p, operation)
		return err
	}
	_, err := identity.AsVendor(p, operation)
	return err
}
