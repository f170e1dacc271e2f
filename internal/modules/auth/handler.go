package auth

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
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/register-club-owner", h.RegisterClubOwner)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/owners/pending", h.ListPendingOwners)
	rg.POST("/owners/:id/approve", h.ApproveOwner)
	rg.POST("/owners/:id/reject", h.RejectOwner)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Registration failed")
		return
	}

	activity.Record(c, domain.ActivityCreate, "user", user.ID, nil, publicUser(user))
	response.Success(c, http.StatusCreated, gin.H{"user": publicUser(user)})
}

func (h *Handler) RegisterClubOwner(c *gin.Context) {
	var req RegisterClubOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.RegisterClubOwner(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Registration failed")
		return
	}

	activity.Record(c, domain.ActivityCreate, "user", user.ID, nil, publicUser(user))
	response.Success(c, http.StatusCreated, gin.H{
		"user":         publicUser(user),
		"owner_status": user.OwnerStatus,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	// other audit entries carry the user id from the JWT middleware; login
	// has no token yet, so set it here for the activity hook
	c.Set("user_id", result.User.ID)
	activity.Record(c, domain.ActivityLogin, "user", result.User.ID, nil, nil)
	response.Success(c, http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"user":         publicUser(result.User),
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) ListPendingOwners(c *gin.Context) {
	users, err := h.service.ListPendingOwners(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load pending owners")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"owners": users})
}

func (h *Handler) ApproveOwner(c *gin.Context) {
	h.setOwnerStatus(c, domain.OwnerVerified)
}

func (h *Handler) RejectOwner(c *gin.Context) {
	h.setOwnerStatus(c, domain.OwnerRejected)
}

func (h *Handler) setOwnerStatus(c *gin.Context, status domain.OwnerStatus) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	user, err := h.service.SetOwnerStatus(c.Request.Context(), id, status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Club owner not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update owner status")
		return
	}

	activity.Record(c, domain.ActivityUpdate, "user", user.ID, nil, gin.H{"owner_status": user.OwnerStatus})
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func publicUser(u *domain.User) UserPublic {
	return UserPublic{
		ID:    u.ID,
		Role:  string(u.Role),
		Name:  u.Name,
		Email: u.Email,
	}
}
