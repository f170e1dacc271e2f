package catalog

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/clubs", h.ListClubs)
	rg.GET("/clubs/:id", h.GetClub)
	rg.GET("/clubs/:id/berths", h.ListBerths)
	rg.GET("/clubs/:id/tariffs", h.ListTariffs)
}

func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.GET("/clubs/my", h.MyClubs)
	rg.POST("/clubs", h.CreateClub)
	rg.PATCH("/clubs/:id", h.UpdateClub)
	rg.POST("/clubs/:id/berths", h.CreateBerth)
	rg.PATCH("/clubs/:id/berths/:berthId/availability", h.SetBerthAvailability)
	rg.POST("/clubs/:id/tariffs", h.CreateTariff)
	rg.DELETE("/clubs/:id/tariffs/:tariffId", h.DeleteTariff)
	rg.GET("/clubs/:id/rules", h.ListRules)
	rg.POST("/clubs/:id/rules", h.CreateRule)
	rg.DELETE("/clubs/:id/rules/:ruleId", h.DeleteRule)
}

func (h *Handler) ListClubs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	clubs, err := h.service.ListClubs(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load clubs")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"clubs": clubs})
}

func (h *Handler) MyClubs(c *gin.Context) {
	clubs, err := h.service.MyClubs(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load clubs")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"clubs": clubs})
}

func (h *Handler) GetClub(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}

	club, err := h.service.GetClub(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load club")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"club": club})
}

func (h *Handler) ListBerths(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}

	berths, err := h.service.ListBerths(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load berths")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"berths": berths})
}

func (h *Handler) ListTariffs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}

	tariffs, err := h.service.ListTariffs(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load tariffs")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tariffs": tariffs})
}

func (h *Handler) ListRules(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}

	rules, err := h.service.ListRules(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load rules")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

func (h *Handler) CreateClub(c *gin.Context) {
	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	club, err := h.service.CreateClub(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create club")
		return
	}

	activity.Record(c, domain.ActivityCreate, "club", club.ID, nil, club)
	response.Success(c, http.StatusCreated, gin.H{"club": club})
}

func (h *Handler) UpdateClub(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}

	var req UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	before, _ := h.service.GetClub(c.Request.Context(), id)

	club, err := h.service.UpdateClub(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		h.writeError(c, err, "Failed to update club")
		return
	}

	activity.Record(c, domain.ActivityUpdate, "club", club.ID, before, club)
	response.Success(c, http.StatusOK, gin.H{"club": club})
}

func (h *Handler) CreateBerth(c *gin.Context) {
	clubID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}

	var req CreateBerthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	berth, err := h.service.CreateBerth(c.Request.Context(), clubID, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		h.writeError(c, err, "Failed to create berth")
		return
	}

	activity.Record(c, domain.ActivityCreate, "berth", berth.ID, nil, berth)
	response.Success(c, http.StatusCreated, gin.H{"berth": berth})
}

func (h *Handler) SetBerthAvailability(c *gin.Context) {
	clubID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}
	berthID, err := strconv.ParseInt(c.Param("berthId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid berth id")
		return
	}

	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	berth, err := h.service.SetBerthAvailability(c.Request.Context(), clubID, berthID, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), *req.IsAvailable)
	if err != nil {
		h.writeError(c, err, "Failed to update berth")
		return
	}

	activity.Record(c, domain.ActivityUpdate, "berth", berth.ID, nil, berth)
	response.Success(c, http.StatusOK, gin.H{"berth": berth})
}

func (h *Handler) CreateTariff(c *gin.Context) {
	clubID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}

	var req CreateTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	tariff, err := h.service.CreateTariff(c.Request.Context(), clubID, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		h.writeError(c, err, "Failed to create tariff")
		return
	}

	activity.Record(c, domain.ActivityCreate, "tariff", tariff.ID, nil, tariff)
	response.Success(c, http.StatusCreated, gin.H{"tariff": tariff})
}

func (h *Handler) DeleteTariff(c *gin.Context) {
	clubID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}
	tariffID, err := strconv.ParseInt(c.Param("tariffId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tariff id")
		return
	}

	if err := h.service.DeleteTariff(c.Request.Context(), clubID, tariffID, c.GetInt64("user_id"), domain.UserRole(c.GetString("role"))); err != nil {
		h.writeError(c, err, "Failed to delete tariff")
		return
	}

	activity.Record(c, domain.ActivityDelete, "tariff", tariffID, nil, nil)
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateRule(c *gin.Context) {
	clubID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}

	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rule, err := h.service.CreateRule(c.Request.Context(), clubID, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		h.writeError(c, err, "Failed to create rule")
		return
	}

	activity.Record(c, domain.ActivityCreate, "booking_rule", rule.ID, nil, rule)
	response.Success(c, http.StatusCreated, gin.H{"rule": rule})
}

func (h *Handler) DeleteRule(c *gin.Context) {
	clubID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid club id")
		return
	}
	ruleID, err := strconv.ParseInt(c.Param("ruleId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid rule id")
		return
	}

	if err := h.service.DeleteRule(c.Request.Context(), clubID, ruleID, c.GetInt64("user_id"), domain.UserRole(c.GetString("role"))); err != nil {
		h.writeError(c, err, "Failed to delete rule")
		return
	}

	activity.Record(c, domain.ActivityDelete, "booking_rule", ruleID, nil, nil)
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrOwnerNotVerified):
		response.Error(c, http.StatusForbidden, "OWNER_NOT_VERIFIED", "Club owner account is not verified yet")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
