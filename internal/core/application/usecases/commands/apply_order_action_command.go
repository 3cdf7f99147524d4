package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrApplyOrderActionCommandIsNotConstructed = errors.New(
	"ApplyOrderActionCommand must be created via NewApplyOrderActionCommand constructor",
)

// ApplyOrderActionCommand asks to move one order through its lifecycle on
// behalf of the authenticated principal.
//
// Example:
//
//	cmd, err := NewApplyOrderActionCommand(principal, orderID, "mark-ready")
//	if err != nil {
//	    return err // unknown action names fail here
//	}
//	result, err := handler.Handle(ctx, cmd)
type ApplyOrderActionCommand struct { //nolint:recvcheck //using for validation
	principal identity.Principal
	orderID   kernel.UUID
	action    order.Action

	guard guard.ConstructorGuard
}

// NewApplyOrderActionCommand parses actionName into an order.Action.
// An unrecognised name is an InvalidActionError.
func NewApplyOrderActionCommand(
	principal identity.Principal,
	orderID kernel.UUID,
	actionName string,
) (ApplyOrderActionCommand, error) {
	cmd := ApplyOrderActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setOrderID(orderID),
		cmd.setAction(actionName),
	); err != nil {
		return ApplyOrderActionCommand{}, err
	}

	return cmd, nil
}

func (c ApplyOrderActionCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderActionCommandIsNotConstructed)
}

func (c ApplyOrderActionCommand) Principal() identity.Principal {
	return c.principal
}

func (c ApplyOrderActionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApplyOrderActionCommand) Action() order.Action {
	return c.action
}

func (c *ApplyOrderActionCommand) setPrincipal(principal identity.Principal) error {
	if principal == nil {
		return errs.NewValueIsRequiredError("principal")
	}

	c.principal = principal
	return nil
}

func (c *ApplyOrderActionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyOrderActionCommand) setAction(name string) error {
	action, err := order.ParseAction(name)
	if err != nil {
		return err
	}

	c.action = action
	return nil
}
