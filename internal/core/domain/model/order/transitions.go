package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrTransitionTableIsNotConstructed = errors.New("TransitionTable must be created via NewTransitionTable")

// Rule allows Action from each of the From statuses.
type Rule struct {
	Action Action
	From   []Status
}

// TransitionTable is the explicit state machine: current status -> allowed
// actions -> next status. The next status is always Action.Target(); the
// table only decides where each action may start.
//
// A table is validated when built:
//   - every action is known and appears at most once
//   - every main-path action (everything except cancel and reject) has a rule
//   - from-states are valid and never terminal, so terminal orders cannot be reactivated
//   - main-path actions only move forward along the lifecycle
type TransitionTable struct {
	from  map[Action][]Status
	guard guard.ConstructorGuard
}

// DefaultRules is the main lifecycle. It grants no cancel or reject entry
// points; callers add them explicitly with CancelRule and RejectRule.
func DefaultRules() []Rule {
	return []Rule{
		{Action: ActionConfirmPayment, From: []Status{Pending}},
		{Action: ActionStartProcessing, From: []Status{PaymentConfirmed}},
		{Action: ActionMarkReady, From: []Status{PaymentConfirmed, Processing}},
		{Action: ActionMarkOutForDelivery, From: []Status{Ready}},
		{Action: ActionMarkDelivered, From: []Status{OutForDelivery}},
		{Action: ActionConfirmReceipt, From: []Status{Ready, Delivered}},
	}
}

func CancelRule(from ...Status) Rule {
	return Rule{Action: ActionCancel, From: from}
}

func RejectRule(from ...Status) Rule {
	return Rule{Action: ActionReject, From: from}
}

var defaultTable = mustTable(DefaultRules()...)

// DefaultTransitionTable returns the table built from DefaultRules.
func DefaultTransitionTable() TransitionTable {
	return defaultTable
}

func mustTable(rules ...Rule) TransitionTable {
	t, err := NewTransitionTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTransitionTable validates rules and builds a table. Rules with an empty
// From list are ignored, which is how an operator leaves cancel or reject disabled.
//
// Example:
//
//	table, err := order.NewTransitionTable(append(order.DefaultRules(),
//	    order.CancelRule(order.Pending, order.PaymentConfirmed),
//	    order.RejectRule(order.Pending),
//	)...)
func NewTransitionTable(rules ...Rule) (TransitionTable, error) {
	table := TransitionTable{from: make(map[Action][]Status), guard: guard.NewConstructorGuard()}

	var problems []error
	for _, rule := range rules {
		if err := table.add(rule); err != nil {
			problems = append(problems, err)
		}
	}

	for _, a := range AllActions() {
		if a == ActionCancel || a == ActionReject {
			continue
		}
		if _, ok := table.from[a]; !ok {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("transition rule for %s", a)))
		}
	}

	if err := errors.Join(problems...); err != nil {
		return TransitionTable{}, err
	}
	return table, nil
}

func (t TransitionTable) add(rule Rule) error {
	if !rule.Action.valid() {
		return errs.NewInvalidActionError(rule.Action.String())
	}
	if len(rule.From) == 0 {
		return nil
	}
	if _, dup := t.from[rule.Action]; dup {
		return errs.NewValueIsInvalidErrorWithCause("transition rule", fmt.Errorf("%s is defined twice", rule.Action))
	}

	target := rule.Action.Target()
	targetRank, onMainPath := mainPathRank[target]
	for _, s := range rule.From {
		if err := s.Validate(); err != nil {
			return err
		}
		if s.IsTerminal() {
			return errs.NewValueIsInvalidErrorWithCause("transition rule",
				fmt.Errorf("%s cannot start from terminal status %s", rule.Action, s))
		}
		if onMainPath && mainPathRank[s] >= targetRank {
			return errs.NewValueIsInvalidErrorWithCause("transition rule",
				fmt.Errorf("%s from %s would move the order backwards", rule.Action, s))
		}
	}

	from := slices.Clone(rule.From)
	slices.Sort(from)
	t.from[rule.Action] = slices.Compact(from)
	return nil
}

// Validate ensures the table was built by NewTransitionTable.
func (t TransitionTable) Validate() error {
	return t.guard.Validate(ErrTransitionTableIsNotConstructed)
}

// Next returns the status reached by applying action to current, or an
// InvalidTransitionError naming the statuses the action is allowed from.
func (t TransitionTable) Next(current Status, action Action) (Status, error) {
	if err := t.Validate(); err != nil {
		return Unknown, err
	}
	if !action.valid() {
		return Unknown, errs.NewInvalidActionError(action.String())
	}

	from, ok := t.from[action]
	if !ok {
		return Unknown, errs.NewInvalidTransitionError(action.String(), current.String(),
			fmt.Sprintf("%s is not enabled for any status", action))
	}
	if !slices.Contains(from, current) {
		return Unknown, errs.NewInvalidTransitionError(action.String(), current.String(),
			"order must be "+joinStatuses(from))
	}
	return action.Target(), nil
}

// Allowed lists the actions that may be applied from current, in lifecycle order.
func (t TransitionTable) Allowed(current Status) []Action {
	var allowed []Action
	for _, a := range AllActions() {
		if slices.Contains(t.from[a], current) {
			allowed = append(allowed, a)
		}
	}
	return allowed
}

func joinStatuses(statuses []Status) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return strings.Join(names, " or ")
}
