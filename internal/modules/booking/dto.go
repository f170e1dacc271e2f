package booking

import "marinaclub/internal/domain"

type CreateBookingRequest struct {
	ClubID      int64  `json:"club_id" binding:"required"`
	BerthID     int64  `json:"berth_id" binding:"required"`
	VesselID    int64  `json:"vessel_id" binding:"required"`
	TariffID    *int64 `json:"tariff_id"`
	AutoRenewal bool   `json:"auto_renewal"`
	PayNow      bool   `json:"pay_now"`
}

type CreateBookingResponse struct {
	Booking  *domain.Booking  `json:"booking"`
	Payments []domain.Payment `json:"payments"`
}
