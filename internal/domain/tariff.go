package domain

import "time"

type TariffKind string

const (
	TariffSeason  TariffKind = "season"
	TariffMonthly TariffKind = "monthly"
)

type Tariff struct {
	ID        int64      `json:"id"`
	ClubID    int64      `json:"club_id" validate:"required"`
	Kind      TariffKind `json:"kind" validate:"required"`
	Amount    float64    `json:"amount" validate:"required,gte=0"`
	Months    MonthList  `json:"months" gorm:"type:json"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type RuleKind string

const (
	RuleRequireDeposit RuleKind = "require_deposit"
	RuleRequireMonths  RuleKind = "require_months"
)

// BookingRule is a club- or tariff-scoped booking policy. A rule with a nil
// TariffID applies to every tariff of the club.
type BookingRule struct {
	ID            int64     `json:"id"`
	ClubID        int64     `json:"club_id" validate:"required"`
	TariffID      *int64    `json:"tariff_id,omitempty"`
	Kind          RuleKind  `json:"kind" validate:"required"`
	DepositAmount float64   `json:"deposit_amount,omitempty"`
	Months        MonthList `json:"months,omitempty" gorm:"type:json"`
	CreatedAt     time.Time `json:"created_at"`
}

// AppliesTo reports whether the rule binds a booking made under the given
// tariff (nil for a tariff-less booking).
func (r BookingRule) AppliesTo(tariffID *int64) bool {
	if r.TariffID == nil {
		return true
	}
	return tariffID != nil && *r.TariffID == *tariffID
}
