package payment

import (
	"math"
	"time"

	"marinaclub/internal/domain"
	"marinaclub/internal/modules/booking"

	"github.com/google/uuid"
)

// ScheduleBuilder turns a priced booking resolution into its payment rows.
// Invariant: the amounts always sum to the resolution total, so the booking
// price equals the sum of its schedule.
type ScheduleBuilder struct {
	immediateDelay time.Duration
}

func NewScheduleBuilder(immediateDelay time.Duration) *ScheduleBuilder {
	return &ScheduleBuilder{immediateDelay: immediateDelay}
}

func (s *ScheduleBuilder) Build(userID int64, res *booking.Resolution, payNow bool, now time.Time) []domain.Payment {
	out := make([]domain.Payment, 0, len(res.Months)+1)

	// A deposit is due immediately regardless of the pay_now flag.
	if res.Deposit > 0 {
		out = append(out, s.payment(userID, res.Deposit, now.Add(s.immediateDelay), now))
	}

	if res.Monthly && len(res.Months) > 0 {
		n := len(res.Months)
		perMonth := math.Round(res.Base/float64(n)*100) / 100
		year := res.StartDate.Year()
		allocated := 0.0
		for i, month := range res.Months {
			due := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			if i == 0 && payNow {
				due = now.Add(s.immediateDelay)
			} else if due.Before(now) {
				due = now.Add(s.immediateDelay)
			}
			amount := perMonth
			if i == n-1 {
				// the last instalment absorbs the rounding remainder so the
				// schedule keeps summing to the booking total
				amount = res.Base - allocated
			}
			allocated += amount
			out = append(out, s.payment(userID, amount, due, now))
		}
		return out
	}

	due := res.StartDate
	if payNow || due.Before(now) {
		due = now.Add(s.immediateDelay)
	}
	out = append(out, s.payment(userID, res.Base, due, now))
	return out
}

func (s *ScheduleBuilder) payment(userID int64, amount float64, due, now time.Time) domain.Payment {
	return domain.Payment{
		Reference: uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Status:    domain.PaymentPending,
		DueDate:   due,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
