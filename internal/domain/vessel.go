package domain

import (
	"time"

	"marinaclub/internal/pkg/numeric"
)

type Vessel struct {
	ID          int64          `json:"id"`
	OwnerID     int64          `json:"owner_id" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Length      numeric.Meters `json:"length" validate:"required"`
	Width       numeric.Meters `json:"width" validate:"required"`
	Capacity    int            `json:"capacity,omitempty"`
	IsActive    bool           `json:"is_active"`
	IsValidated bool           `json:"is_validated"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
