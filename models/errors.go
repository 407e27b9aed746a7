package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// TransactionFailedError is rendered with the http status code 500.
	// It is always raised after the surrounding transaction has been rolled
	// back, and its message never carries storage engine detail.
	TransactionFailedError = errors.New("database transaction failed")
)

// Collection and payload errors layered on the base ones
var (
	// NoItemsError: an unfiltered (or paginated) list resolved to nothing.
	// Rendered as a 404 for compatibility with the historical API contract.
	NoItemsError = errors.Wrap(NotFoundError, "no items found")

	// MissingRequiredFieldError: an update was called with an empty payload.
	MissingRequiredFieldError = errors.Wrap(BadParameterError, "required field not found")
)

func NewNotFoundError(entityName string) error {
	return errors.Wrapf(NotFoundError, "%s not found", entityName)
}

func NewNoItemsError(entityName string) error {
	return errors.Wrapf(NoItemsError, "no %ss were found", entityName)
}

func NewConflictError(entityName string) error {
	return errors.Wrapf(ConflictError, "unique constraint violated for %s", entityName)
}

// FieldValidationError carries per-field messages for payload validation
// failures. It renders as a 400.
type FieldValidationError map[string]string

func (e FieldValidationError) Error() string {
	return fmt.Sprintf("%v", map[string]string(e))
}

func (e FieldValidationError) Unwrap() error {
	return BadParameterError
}
