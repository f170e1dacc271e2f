package domain

import (
	"time"

	"marinaclub/internal/pkg/numeric"
)

type Club struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	Address      string    `json:"address,omitempty"`
	SeasonYear   int       `json:"season_year"`
	ActiveMonths MonthList `json:"active_months" gorm:"type:json"`
	BasePrice    float64   `json:"base_price" validate:"gte=0"`
	BerthCount   int       `json:"berth_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Berth struct {
	ID          int64          `json:"id"`
	ClubID      int64          `json:"club_id" validate:"required"`
	Number      string         `json:"number" validate:"required"`
	MaxLength   numeric.Meters `json:"max_length" validate:"required"`
	MaxWidth    numeric.Meters `json:"max_width" validate:"required"`
	IsAvailable bool           `json:"is_available"`
	PricePerDay *float64       `json:"price_per_day,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
