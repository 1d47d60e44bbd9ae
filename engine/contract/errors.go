package contract

import "errors"

var (
	// ErrNoData marks an expected empty result; callers translate it into an
	// informational response, never a fault.
	ErrNoData = errors.New("no matching records")

	ErrComputation       = errors.New("agent computation failed")
	ErrModelInvoke       = errors.New("model invoke failed")
	ErrSchemaViolation   = errors.New("model response violates schema")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrItemNotFound      = errors.New("inventory item not found")
)
