package returns

import "errors"

var (
	ErrReturnNotFound    = errors.New("return request not found")
	ErrReasonRequired    = errors.New("return reason is required")
	ErrOrderNotDelivered = errors.New("only delivered orders can be returned")
	ErrReturnExists      = errors.New("a return request already exists for this order")
	ErrInvalidTransition = errors.New("invalid return status transition")
	ErrForbidden         = errors.New("not allowed to access this return")
)
