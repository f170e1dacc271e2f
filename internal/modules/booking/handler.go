package booking

import (
	"errors"
	"net/http"
	"strconv"

	"marinaclub/internal/domain"
	"marinaclub/internal/modules/activity"
	"marinaclub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/my", h.GetMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
}

func (h *Handler) RegisterClubRoutes(rg *gin.RouterGroup) {
	rg.GET("/clubs/:id/bookings", h.GetClubBookings)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	out, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBerthConflict), errors.Is(err, ErrVesselConflict):
			response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Vessel does not belong to you")
		case errors.Is(err, ErrLengthExceeded),
			errors.Is(err, ErrWidthExceeded),
			errors.Is(err, ErrMonthsNotConfigured),
			errors.Is(err, ErrNoMonthsAvailable),
			errors.Is(err, ErrBerthUnavailable),
			errors.Is(err, ErrVesselNotValidated),
			errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	activity.Record(c, domain.ActivityCreate, "booking", out.Booking.ID, nil, out.Booking)
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	userID := c.GetInt64("user_id")
	role := domain.UserRole(c.GetString("role"))

	before, _ := h.service.bookings.GetByID(c.Request.Context(), id)

	b, err := h.service.CancelBooking(c.Request.Context(), id, userID, role)
	if err != nil {
		var blocked *BlockedPaymentsError
		switch {
		case errors.As(err, &blocked):
			response.ErrorWithDetails(c, http.StatusConflict, "PAYMENTS_NOT_PENDING", err.Error(), gin.H{
				"blocking_payments": blocked.Count,
			})
		case errors.Is(err, ErrAlreadyCancelled):
			response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Booking is already cancelled")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot cancel this booking")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
		}
		return
	}

	activity.Record(c, domain.ActivityUpdate, "booking", b.ID, before, b)
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	userID := c.GetInt64("user_id")
	role := domain.UserRole(c.GetString("role"))

	b, err := h.service.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.service.GetMyBookings(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetClubBookings(c *gin.Context) {
	clubID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}

	userID := c.GetInt64("user_id")
	role := domain.UserRole(c.GetString("role"))

	bookings, err := h.service.GetClubBookings(c.Request.Context(), clubID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Club not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}
