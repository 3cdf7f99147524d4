package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrInvalidAction      = errors.New("invalid action")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// sanitize flattens values that end up inside single-line error messages.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports an entity that is absent or outside the caller's scope.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, e.ID),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports malformed input.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)),
		e.Cause,
	)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing required input.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError reports a lifecycle action whose guard does not hold.
// Reason names the precondition that failed.
type InvalidTransitionError struct {
	Action string
	From   string
	Reason string
}

func NewInvalidTransitionError(action, from, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, From: from, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s order in status %s: %s", ErrInvalidTransition, e.Action, e.From, e.Reason)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidActionError reports an unrecognised action name.
type InvalidActionError struct {
	Action string
}

func NewInvalidActionError(action string) *InvalidActionError {
	return &InvalidActionError{Action: action}
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidAction, sanitize(e.Action))
}

func (e *InvalidActionError) Unwrap() error {
	return ErrInvalidAction
}

// ForbiddenError reports a caller whose role does not permit the operation.
type ForbiddenError struct {
	Operation string
	Reason    string
}

func NewForbiddenError(operation, reason string) *ForbiddenError {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrForbidden, e.Operation, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ConflictError reports a write that lost a race or collides with existing state.
type ConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func NewConflictErrorWithCause(paramName string, id any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrConflict, e.ParamName, sanitize(e.ID)), e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// IsValidation reports whether err belongs to the malformed-input family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
