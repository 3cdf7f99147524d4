package order

import (
	"marketplace/internal/pkg/errs"
)

// Action is a lifecycle operation that moves an order to a fixed target status.
type Action int

const (
	ActionUnknown Action = iota
	ActionConfirmPayment
	ActionStartProcessing
	ActionMarkReady
	ActionMarkOutForDelivery
	ActionMarkDelivered
	ActionConfirmReceipt
	ActionCancel
	ActionReject
)

type actionDef struct {
	name   string
	target Status
}

var actionDefs = map[Action]actionDef{
	ActionConfirmPayment:     {name: "confirm-payment", target: PaymentConfirmed},
	ActionStartProcessing:    {name: "mark-processing", target: Processing},
	ActionMarkReady:          {name: "mark-ready", target: Ready},
	ActionMarkOutForDelivery: {name: "out-for-delivery", target: OutForDelivery},
	ActionMarkDelivered:      {name: "mark-delivered", target: Delivered},
	ActionConfirmReceipt:     {name: "confirm-receipt", target: Completed},
	ActionCancel:             {name: "cancel", target: Cancelled},
	ActionReject:             {name: "reject", target: Rejected},
}

// AllActions lists every valid action in lifecycle order.
func AllActions() []Action {
	return []Action{
		ActionConfirmPayment, ActionStartProcessing, ActionMarkReady, ActionMarkOutForDelivery,
		ActionMarkDelivered, ActionConfirmReceipt, ActionCancel, ActionReject,
	}
}

// ParseAction maps a wire name such as "mark-ready" to its Action.
// Unrecognised names yield an InvalidActionError.
func ParseAction(name string) (Action, error) {
	for a, def := range actionDefs {
		if def.name == name {
			return a, nil
		}
	}
	return ActionUnknown, errs.NewInvalidActionError(name)
}

// String returns the wire name.
func (a Action) String() string {
	if def, ok := actionDefs[a]; ok {
		return def.name
	}
	return "unknown"
}

// Target is the status an order holds after the action succeeds.
func (a Action) Target() Status {
	return actionDefs[a].target
}

// IsCustomerAction reports whether the action is performed by the ordering
// customer rather than the vendor.
func (a Action) IsCustomerAction() bool {
	return a == ActionConfirmReceipt
}

func (a Action) valid() bool {
	_, ok := actionDefs[a]
	return ok
}
