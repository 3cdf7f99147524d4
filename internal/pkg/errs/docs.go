// Package errs provides the error taxonomy of the marketplace core.
// Every error type follows the same pattern: a sentinel variable, a struct
// carrying details, constructors with and without cause, Error() and Unwrap()
// so callers can classify failures with errors.Is.
//
// The taxonomy:
//   - ObjectNotFoundError: entity absent or outside the caller's scope
//   - InvalidTransitionError: a lifecycle guard does not hold
//   - InvalidActionError: unknown action name
//   - ForbiddenError: caller's role does not permit the operation
//   - ConflictError: a concurrent write won, or a unique key collides
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError:
//     malformed or missing input (see IsValidation)
//
// None of these are fatal; the HTTP layer translates them to status codes.
package errs
