package booking

import (
	"context"
	"time"

	"marinaclub/internal/domain"
)

// BookingRepository defines the persistence operations the service needs.
type BookingRepository interface {
	CreateChecked(ctx context.Context, b *domain.Booking, payments []domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	ListByClub(ctx context.Context, clubID int64) ([]domain.Booking, error)
	CancelWithPayments(ctx context.Context, bookingID, berthID int64) error
}

type ClubReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Club, error)
	GetOwnerID(ctx context.Context, clubID int64) (int64, error)
}

type BerthReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Berth, error)
}

type VesselReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vessel, error)
}

type TariffReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Tariff, error)
	ListRulesByClub(ctx context.Context, clubID int64) ([]domain.BookingRule, error)
}

type PaymentReader interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

// Scheduler turns a priced resolution into the payment rows persisted with
// the booking.
type Scheduler interface {
	Build(userID int64, res *Resolution, payNow bool, now time.Time) []domain.Payment
}
