package payment

import (
	"context"
	"time"

	"marinaclub/internal/domain"
)

type paymentRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, error)
	MarkPaidIdempotent(ctx context.Context, paymentID int64, paidAt time.Time) (bool, error)
	UpdateStatus(ctx context.Context, paymentID int64, status domain.PaymentStatus) error
	MarkOverdueIfPending(ctx context.Context, paymentID int64) (bool, error)
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Payment, error)
	AddPenalty(ctx context.Context, paymentID int64, penalty float64) error
}

type bookingRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
	CancelIfPending(ctx context.Context, bookingID, berthID int64) (bool, error)
}

type clubReader interface {
	GetOwnerID(ctx context.Context, clubID int64) (int64, error)
}
