package booking

import (
	"context"
	"errors"
	"time"

	"marinaclub/internal/domain"
	"marinaclub/internal/repository"
)

type Service struct {
	bookings  BookingRepository
	clubs     ClubReader
	berths    BerthReader
	vessels   VesselReader
	tariffs   TariffReader
	payments  PaymentReader
	scheduler Scheduler
}

func NewService(
	bookings BookingRepository,
	clubs ClubReader,
	berths BerthReader,
	vessels VesselReader,
	tariffs TariffReader,
	payments PaymentReader,
	scheduler Scheduler,
) *Service {
	return &Service{
		bookings:  bookings,
		clubs:     clubs,
		berths:    berths,
		vessels:   vessels,
		tariffs:   tariffs,
		payments:  payments,
		scheduler: scheduler,
	}
}

func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*CreateBookingResponse, error) {
	club, err := s.clubs.GetByID(ctx, req.ClubID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	berth, err := s.berths.GetByID(ctx, req.BerthID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if berth.ClubID != club.ID {
		return nil, ErrValidation
	}
	if !berth.IsAvailable {
		return nil, ErrBerthUnavailable
	}

	vessel, err := s.vessels.GetByID(ctx, req.VesselID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if vessel.OwnerID != userID {
		return nil, ErrForbidden
	}
	if !vessel.IsActive || !vessel.IsValidated {
		return nil, ErrVesselNotValidated
	}

	var tariff *domain.Tariff
	if req.TariffID != nil {
		tariff, err = s.tariffs.GetByID(ctx, *req.TariffID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrValidation
			}
			return nil, err
		}
		if tariff.ClubID != club.ID {
			return nil, ErrValidation
		}
	}

	rules, err := s.tariffs.ListRulesByClub(ctx, club.ID)
	if err != nil {
		return nil, err
	}

	res, err := Resolve(club, berth, vessel, tariff, rules)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payments := s.scheduler.Build(userID, res, req.PayNow, now)

	b := &domain.Booking{
		ClubID:      club.ID,
		BerthID:     berth.ID,
		VesselID:    vessel.ID,
		UserID:      userID,
		TariffID:    req.TariffID,
		StartDate:   res.StartDate,
		EndDate:     res.EndDate,
		TotalPrice:  res.Total(),
		Status:      domain.BookingPending,
		AutoRenewal: req.AutoRenewal,
	}

	if err := s.bookings.CreateChecked(ctx, b, payments); err != nil {
		switch {
		case errors.Is(err, repository.ErrBerthOverlap):
			return nil, ErrBerthConflict
		case errors.Is(err, repository.ErrVesselOverlap):
			return nil, ErrVesselConflict
		default:
			return nil, err
		}
	}

	return &CreateBookingResponse{Booking: b, Payments: payments}, nil
}

// CancelBooking is guarded: only the vessel owner behind the booking, the
// club's owner or an admin may cancel, and only while every linked payment is
// still pending. The cancellation itself is atomic across booking and
// payment rows.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.Status == domain.BookingCancelled {
		return nil, ErrAlreadyCancelled
	}

	allowed := b.UserID == actorID || actorRole == domain.RoleAdmin
	if !allowed {
		ownerID, err := s.clubs.GetOwnerID(ctx, b.ClubID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		allowed = ownerID == actorID
	}
	if !allowed {
		return nil, ErrForbidden
	}

	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	blocked := 0
	for _, p := range payments {
		if p.Status != domain.PaymentPending {
			blocked++
		}
	}
	if blocked > 0 {
		return nil, &BlockedPaymentsError{Count: blocked}
	}

	// The read above is only a fast path; the transaction re-checks the
	// all-pending precondition so a payment settling in between still
	// refuses the cancellation.
	if err := s.bookings.CancelWithPayments(ctx, bookingID, b.BerthID); err != nil {
		var notPending *repository.PaymentsNotPendingError
		switch {
		case errors.As(err, &notPending):
			return nil, &BlockedPaymentsError{Count: notPending.Count}
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrAlreadyCancelled
		}
		return nil, err
	}

	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) GetByID(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
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
	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) GetClubBookings(ctx context.Context, clubID, actorID int64, actorRole domain.UserRole) ([]domain.Booking, error) {
	if actorRole != domain.RoleAdmin {
		ownerID, err := s.clubs.GetOwnerID(ctx, clubID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if ownerID != actorID {
			return nil, ErrForbidden
		}
	}
	return s.bookings.ListByClub(ctx, clubID)
}
