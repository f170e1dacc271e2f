package payment

import "errors"

var (
	ErrNotFound      = errors.New("payment not found")
	ErrForbidden     = errors.New("forbidden")
	ErrNotRefundable = errors.New("payment is not refundable")
)
