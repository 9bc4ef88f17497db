package payment

import "errors"

var (
	ErrSignatureMismatch = errors.New("payment signature verification failed")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrMissingField      = errors.New("order id, payment id and signature are required")
)
