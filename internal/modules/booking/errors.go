package booking

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrLengthExceeded      = errors.New("vessel length exceeds berth maximum")
	ErrWidthExceeded       = errors.New("vessel width exceeds berth maximum")
	ErrMonthsNotConfigured = errors.New("active months are not configured")
	ErrNoMonthsAvailable   = errors.New("no months available for this tariff")
	ErrBerthConflict       = errors.New("berth already booked for this period")
	ErrVesselConflict      = errors.New("vessel already booked for this period")
	ErrBerthUnavailable    = errors.New("berth is not available")
	ErrVesselNotValidated  = errors.New("vessel is not validated")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("booking not found")
	ErrAlreadyCancelled    = errors.New("booking already cancelled")
)

// BlockedPaymentsError refuses a cancellation because some payments left the
// pending state; Count names how many block it.
type BlockedPaymentsError struct {
	Count int
}

func (e *BlockedPaymentsError) Error() string {
	return fmt.Sprintf("cancellation blocked: %d payments are no longer pending", e.Count)
}
