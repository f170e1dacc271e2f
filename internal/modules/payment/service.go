package payment

import (
	"context"
	"errors"
	"time"

	"marinaclub/internal/domain"
	"marinaclub/internal/repository"
)

type Service struct {
	payments paymentRepo
	bookings bookingRepo
	clubs    clubReader
	loggerf  func(format string, args ...interface{})
}

func NewService(payments paymentRepo, bookings bookingRepo, clubs clubReader, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		clubs:    clubs,
		loggerf:  loggerf,
	}
}

// Pay marks a payment paid. Idempotent: a second confirmation of an already
// paid payment returns the payment unchanged with no error. When the last
// payment of a pending booking settles, the booking moves to confirmed.
func (s *Service) Pay(ctx context.Context, paymentID, actorID int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.UserID != actorID {
		return nil, ErrForbidden
	}

	changed, err := s.payments.MarkPaidIdempotent(ctx, paymentID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		if p.Status == domain.PaymentPaid {
			s.loggerf("level=info msg=duplicate payment confirmation payment_id=%d", paymentID)
			return p, nil
		}
		return nil, ErrNotRefundable
	}

	if err := s.confirmBookingIfSettled(ctx, p.BookingID); err != nil {
		s.loggerf("level=error msg=failed to sync booking status after payment booking_id=%d err=%v", p.BookingID, err)
	}

	return s.payments.GetByID(ctx, paymentID)
}

func (s *Service) confirmBookingIfSettled(ctx context.Context, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status != domain.BookingPending {
		return nil
	}

	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	for _, p := range payments {
		if p.Status != domain.PaymentPaid {
			return nil
		}
	}
	return s.bookings.UpdateStatus(ctx, bookingID, domain.BookingConfirmed)
}

// Refund is admin-only plumbing; the authorization check lives in the
// routing layer. Only paid payments can be refunded.
func (s *Service) Refund(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Status != domain.PaymentPaid {
		return nil, ErrNotRefundable
	}
	if err := s.payments.UpdateStatus(ctx, paymentID, domain.PaymentRefunded); err != nil {
		return nil, err
	}
	return s.payments.GetByID(ctx, paymentID)
}

func (s *Service) ListForBooking(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) ([]domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != actorID && actorRole != domain.RoleAdmin {
		ownerID, err := s.clubs.GetOwnerID(ctx, b.ClubID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if ownerID != actorID {
			return nil, ErrForbidden
		}
	}
	return s.payments.ListByBooking(ctx, bookingID)
}

func (s *Service) ListMine(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.payments.ListByUser(ctx, userID, limit, offset)
}
