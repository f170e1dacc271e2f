package booking

import (
	"time"

	"marinaclub/internal/domain"
)

// Resolution is the outcome of the feasibility and pricing pass: the concrete
// date range the booking will occupy, the months it covers, and the price
// split into base amount and deposit. Total = Base + Deposit, and the payment
// schedule generated from it must sum to Total.
type Resolution struct {
	StartDate time.Time
	EndDate   time.Time
	Months    domain.MonthList
	Base      float64
	Deposit   float64

	// Monthly marks a per-month tariff: the schedule splits Base into one
	// payment per covered month instead of a single lump sum.
	Monthly bool
}

func (r Resolution) Total() float64 { return r.Base + r.Deposit }

// Resolve decides whether a booking of the vessel at the berth is physically
// and temporally valid and computes its date range and price. It is pure:
// overlap checks against existing bookings happen later, inside the insert
// transaction. Every returned error is a user-facing validation failure.
func Resolve(club *domain.Club, berth *domain.Berth, vessel *domain.Vessel, tariff *domain.Tariff, rules []domain.BookingRule) (*Resolution, error) {
	if vessel.Length.Float64() > berth.MaxLength.Float64() {
		return nil, ErrLengthExceeded
	}
	if vessel.Width.Float64() > berth.MaxWidth.Float64() {
		return nil, ErrWidthExceeded
	}

	clubMonths := club.ActiveMonths.Normalized()
	if len(clubMonths) == 0 {
		return nil, ErrMonthsNotConfigured
	}

	var tariffID *int64
	if tariff != nil {
		tariffID = &tariff.ID
	}

	months := clubMonths
	res := &Resolution{}

	switch {
	case tariff == nil:
		res.Base = club.BasePrice

	case tariff.Kind == domain.TariffSeason:
		res.Base = tariff.Amount

	case tariff.Kind == domain.TariffMonthly:
		tariffMonths := tariff.Months.Normalized()
		if len(tariffMonths) == 0 {
			return nil, ErrMonthsNotConfigured
		}
		months = clubMonths.Intersect(tariffMonths)
		for _, rule := range rules {
			if rule.Kind == domain.RuleRequireMonths && rule.AppliesTo(tariffID) {
				months = months.Intersect(rule.Months.Normalized())
			}
		}
		if len(months) == 0 {
			return nil, ErrNoMonthsAvailable
		}
		res.Base = tariff.Amount * float64(len(months))
		res.Monthly = true

	default:
		return nil, ErrValidation
	}

	for _, rule := range rules {
		if rule.Kind == domain.RuleRequireDeposit && rule.AppliesTo(tariffID) {
			res.Deposit = rule.DepositAmount
			break
		}
	}

	res.Months = months
	res.StartDate, res.EndDate = months.SpanInYear(club.SeasonYear)
	return res, nil
}
