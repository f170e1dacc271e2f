package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          int64         `json:"id"`
	ClubID      int64         `json:"club_id" validate:"required"`
	BerthID     int64         `json:"berth_id" validate:"required"`
	VesselID    int64         `json:"vessel_id" validate:"required"`
	UserID      int64         `json:"user_id" validate:"required"`
	TariffID    *int64        `json:"tariff_id,omitempty"`
	StartDate   time.Time     `json:"start_date" validate:"required"`
	EndDate     time.Time     `json:"end_date" validate:"required"`
	TotalPrice  float64       `json:"total_price" validate:"gte=0"`
	Status      BookingStatus `json:"status"`
	AutoRenewal bool          `json:"auto_renewal"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`

	// Связи
	Vessel *Vessel `json:"vessel,omitempty" gorm:"foreignKey:VesselID"`
	Berth  *Berth  `json:"berth,omitempty" gorm:"foreignKey:BerthID"`
}

// Overlaps reports whether two date ranges intersect, inclusive on both ends.
func (b Booking) Overlaps(start, end time.Time) bool {
	return !b.EndDate.Before(start) && !b.StartDate.After(end)
}
