package fleet

import (
	"errors"
	"net/http"
	"strconv"

	"marinaclub/internal/domain"
	"marinaclub/internal/modules/activity"
	"marinaclub/internal/pkg/numeric"
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
	rg.POST("/vessels", h.Register)
	rg.GET("/vessels", h.ListMine)
	rg.GET("/vessels/:id", h.Get)
	rg.PATCH("/vessels/:id/dimensions", h.UpdateDimensions)
	rg.DELETE("/vessels/:id", h.Deactivate)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/vessels/:id/validate", h.Validate)
}

func (h *Handler) Register(c *gin.Context) {
	var req CreateVesselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.Register(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to register vessel")
		return
	}

	activity.Record(c, domain.ActivityCreate, "vessel", v.ID, nil, v)
	response.Success(c, http.StatusCreated, gin.H{"vessel": v})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vessel id")
		return
	}

	v, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err, "Failed to load vessel")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vessel": v})
}

func (h *Handler) ListMine(c *gin.Context) {
	vessels, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load vessels")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vessels": vessels})
}

func (h *Handler) UpdateDimensions(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vessel id")
		return
	}

	var req struct {
		Length numeric.Meters `json:"length" binding:"required"`
		Width  numeric.Meters `json:"width" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.UpdateDimensions(c.Request.Context(), id, c.GetInt64("user_id"), req.Length, req.Width)
	if err != nil {
		h.writeError(c, err, "Failed to update vessel")
		return
	}

	activity.Record(c, domain.ActivityUpdate, "vessel", v.ID, nil, v)
	response.Success(c, http.StatusOK, gin.H{"vessel": v})
}

func (h *Handler) Validate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vessel id")
		return
	}

	v, err := h.service.Validate(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to validate vessel")
		return
	}

	activity.Record(c, domain.ActivityUpdate, "vessel", v.ID, nil, gin.H{"is_validated": v.IsValidated})
	response.Success(c, http.StatusOK, gin.H{"vessel": v})
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid vessel id")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err, "Failed to deactivate vessel")
		return
	}

	activity.Record(c, domain.ActivityDelete, "vessel", id, nil, nil)
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Vessel not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
