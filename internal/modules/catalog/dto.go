package catalog

import (
	"marinaclub/internal/domain"
	"marinaclub/internal/pkg/numeric"
)

type CreateClubRequest struct {
	Name         string           `json:"name" binding:"required"`
	Address      string           `json:"address"`
	SeasonYear   int              `json:"season_year" binding:"required"`
	ActiveMonths domain.MonthList `json:"active_months" binding:"required"`
	BasePrice    float64          `json:"base_price"`
	BerthCount   int              `json:"berth_count"`
}

type UpdateClubRequest struct {
	Name         *string           `json:"name"`
	Address      *string           `json:"address"`
	SeasonYear   *int              `json:"season_year"`
	ActiveMonths *domain.MonthList `json:"active_months"`
	BasePrice    *float64          `json:"base_price"`
}

// Dimensions bind through numeric.Meters so that clients sending "12.5"
// instead of 12.5 are normalized at the boundary.
type CreateBerthRequest struct {
	Number      string         `json:"number" binding:"required"`
	MaxLength   numeric.Meters `json:"max_length" binding:"required"`
	MaxWidth    numeric.Meters `json:"max_width" binding:"required"`
	PricePerDay *float64       `json:"price_per_day"`
}

type CreateTariffRequest struct {
	Kind   domain.TariffKind `json:"kind" binding:"required"`
	Amount float64           `json:"amount" binding:"required"`
	Months domain.MonthList  `json:"months"`
}

type CreateRuleRequest struct {
	TariffID      *int64           `json:"tariff_id"`
	Kind          domain.RuleKind  `json:"kind" binding:"required"`
	DepositAmount float64          `json:"deposit_amount"`
	Months        domain.MonthList `json:"months"`
}
