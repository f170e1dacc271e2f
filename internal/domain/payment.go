package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

type Payment struct {
	ID        int64         `json:"id"`
	Reference string        `json:"reference"`
	BookingID int64         `json:"booking_id" validate:"required"`
	UserID    int64         `json:"user_id" validate:"required"`
	Amount    float64       `json:"amount" validate:"required,gte=0"`
	Status    PaymentStatus `json:"status"`
	DueDate   time.Time     `json:"due_date"`
	Penalty   float64       `json:"penalty,omitempty"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
