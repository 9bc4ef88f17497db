package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOrderTerminal       = errors.New("order is already in a terminal state")
	ErrReasonRequired      = errors.New("cancellation reason is required")
	ErrForbidden           = errors.New("not allowed to access this order")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrCustomerIncomplete  = errors.New("customer name, phone and address are required")
	ErrSequenceExhausted   = errors.New("daily order number sequence exhausted")
	ErrOrderNumberConflict = errors.New("order number already taken")
)
