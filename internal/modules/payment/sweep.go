package payment

import (
	"context"
	"time"

	"marinaclub/internal/domain"
)

// Sweeper is the payment-expiry poller. A payment counts as "pay now" when
// its due date landed within ImmediateDueSpan of its creation; once such a
// payment stays pending past the grace period it goes overdue, and if its
// booking is still pending the booking is cancelled and the berth released.
// Every transition re-checks current state first, so the sweep tolerates a
// concurrent manual payment and can safely run again on the next tick.
type Sweeper struct {
	payments paymentRepo
	bookings bookingRepo
	loggerf  func(format string, args ...interface{})

	grace            time.Duration
	immediateDueSpan time.Duration
	overduePenalty   float64
}

type SweepStats struct {
	Scanned           int
	MarkedOverdue     int
	BookingsCancelled int
}

func NewSweeper(payments paymentRepo, bookings bookingRepo, grace, immediateDueSpan time.Duration, loggerf func(format string, args ...interface{})) *Sweeper {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Sweeper{
		payments:         payments,
		bookings:         bookings,
		loggerf:          loggerf,
		grace:            grace,
		immediateDueSpan: immediateDueSpan,
	}
}

// WithOverduePenalty sets a flat surcharge added to every payment the sweep
// marks overdue. Zero disables it.
func (s *Sweeper) WithOverduePenalty(amount float64) *Sweeper {
	s.overduePenalty = amount
	return s
}

// RunOnce performs a single sweep pass. Errors on individual payments are
// logged and skipped; the pass continues and the next interval retries.
func (s *Sweeper) RunOnce(ctx context.Context, now time.Time) (SweepStats, error) {
	var stats SweepStats

	cutoff := now.Add(-s.grace)
	pending, err := s.payments.ListPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		return stats, err
	}

	for _, p := range pending {
		// Only immediate-due payments expire; regular scheduled payments
		// are handled by humans.
		if p.DueDate.Sub(p.CreatedAt) > s.immediateDueSpan {
			continue
		}
		stats.Scanned++

		changed, err := s.payments.MarkOverdueIfPending(ctx, p.ID)
		if err != nil {
			s.loggerf("level=error msg=sweep mark overdue failed payment_id=%d err=%v", p.ID, err)
			continue
		}
		if !changed {
			// Paid or cancelled between the scan and now.
			continue
		}
		stats.MarkedOverdue++

		if s.overduePenalty > 0 {
			if err := s.payments.AddPenalty(ctx, p.ID, s.overduePenalty); err != nil {
				s.loggerf("level=error msg=sweep penalty failed payment_id=%d err=%v", p.ID, err)
			}
		}

		b, err := s.bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			s.loggerf("level=error msg=sweep booking lookup failed booking_id=%d err=%v", p.BookingID, err)
			continue
		}
		if b.Status != domain.BookingPending {
			continue
		}

		cancelled, err := s.bookings.CancelIfPending(ctx, b.ID, b.BerthID)
		if err != nil {
			s.loggerf("level=error msg=sweep booking cancel failed booking_id=%d err=%v", b.ID, err)
			continue
		}
		if cancelled {
			stats.BookingsCancelled++
			s.loggerf("level=info msg=expired unpaid booking cancelled booking_id=%d payment_id=%d", b.ID, p.ID)
		}
	}

	return stats, nil
}

// Start runs the sweep on a fixed wall-clock interval until the context is
// cancelled. Expects a single running instance; this is not a distributed job.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := s.RunOnce(ctx, time.Now().UTC())
			if err != nil {
				s.loggerf("level=error msg=payment sweep failed err=%v", err)
				continue
			}
			if stats.MarkedOverdue > 0 || stats.BookingsCancelled > 0 {
				s.loggerf("level=info msg=payment sweep done scanned=%d overdue=%d cancelled=%d",
					stats.Scanned, stats.MarkedOverdue, stats.BookingsCancelled)
			}
		}
	}
}
