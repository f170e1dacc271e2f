package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"marinaclub/internal/database"
	"marinaclub/internal/domain"
	"marinaclub/internal/middleware"
	"marinaclub/internal/modules/auth"
	"marinaclub/internal/modules/booking"
	"marinaclub/internal/modules/catalog"
	"marinaclub/internal/modules/fleet"
	"marinaclub/internal/modules/payment"
	jwtsvc "marinaclub/internal/pkg/jwt"
	"marinaclub/internal/repository"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
	sweeper    *payment.Sweeper
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// in-memory sqlite holds a database per connection; keep the pool at one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrate(db), "Failed to migrate schema")

	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	berthRepo := repository.NewBerthRepository(db)
	vesselRepo := repository.NewVesselRepository(db)
	tariffRepo := repository.NewTariffRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	catalogHandler := catalog.NewHandler(catalog.NewService(clubRepo, berthRepo, tariffRepo, userRepo))
	fleetHandler := fleet.NewHandler(fleet.NewService(vesselRepo))

	scheduler := payment.NewScheduleBuilder(time.Minute)
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, clubRepo, berthRepo, vesselRepo, tariffRepo, paymentRepo, scheduler))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, bookingRepo, clubRepo, nil))

	sweeper := payment.NewSweeper(paymentRepo, bookingRepo, 2*time.Minute, 5*time.Minute, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)
	catalogHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		fleetHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)

		owner := protected.Group("/")
		owner.Use(middleware.ClubOwnerOrAdmin())
		{
			catalogHandler.RegisterOwnerRoutes(owner)
			bookingHandler.RegisterClubRoutes(owner)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			authHandler.RegisterAdminRoutes(admin)
			fleetHandler.RegisterAdminRoutes(admin)
			paymentHandler.RegisterAdminRoutes(admin)
		}
	}

	// Admin account for the flows that need one
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Name:         "Admin User",
	}
	require.NoError(t, userRepo.Create(t.Context(), &admin), "Failed to create admin user")

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService, sweeper: sweeper}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "unparseable response: %s", w.Body.String())
	return &resp
}

func (s *E2ETestSuite) login(t *testing.T, email, password string) string {
	w := s.makeRequest("POST", "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	return resp.Data["access_token"].(string)
}

func (s *E2ETestSuite) registerVesselOwner(t *testing.T, email string) string {
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]string{
		"name":     "Owner",
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())
	return s.login(t, email, "secret123")
}

// createVerifiedClubOwner registers a club owner, approves it through the
// admin endpoint and returns the owner's token.
func (s *E2ETestSuite) createVerifiedClubOwner(t *testing.T, email string) string {
	w := s.makeRequest("POST", "/api/v1/auth/register-club-owner", map[string]string{
		"name":     "Club Owner",
		"email":    email,
		"phone":    "+7 777 000 1122",
		"password": "longenough",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "owner register failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	user := resp.Data["user"].(map[string]interface{})
	ownerID := int64(user["id"].(float64))

	adminToken := s.login(t, "admin@test.com", "admin123")
	w = s.makeRequest("POST", fmt.Sprintf("/api/v1/admin/owners/%d/approve", ownerID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, "approve failed: %s", w.Body.String())

	return s.login(t, email, "longenough")
}

func (s *E2ETestSuite) createClubWithBerth(t *testing.T, ownerToken string) (clubID, berthID int64) {
	w := s.makeRequest("POST", "/api/v1/clubs", map[string]interface{}{
		"name":          "Kapchagai Marina",
		"address":       "Embankment 1",
		"season_year":   2027,
		"active_months": []int{5, 6, 7, 8, 9},
		"base_price":    50000,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, "club create failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	clubID = int64(resp.Data["club"].(map[string]interface{})["id"].(float64))

	w = s.makeRequest("POST", fmt.Sprintf("/api/v1/clubs/%d/berths", clubID), map[string]interface{}{
		"number":     "A-01",
		"max_length": 10,
		"max_width":  3.5,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, "berth create failed: %s", w.Body.String())
	resp = parseResponse(t, w)
	berthID = int64(resp.Data["berth"].(map[string]interface{})["id"].(float64))
	return clubID, berthID
}

// createValidatedVessel registers a vessel for the token's user and has the
// admin validate it.
func (s *E2ETestSuite) createValidatedVessel(t *testing.T, ownerToken, name string, length, width float64) int64 {
	w := s.makeRequest("POST", "/api/v1/vessels", map[string]interface{}{
		"name":   name,
		"length": length,
		"width":  width,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, "vessel register failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	vesselID := int64(resp.Data["vessel"].(map[string]interface{})["id"].(float64))

	adminToken := s.login(t, "admin@test.com", "admin123")
	w = s.makeRequest("POST", fmt.Sprintf("/api/v1/admin/vessels/%d/validate", vesselID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, "vessel validate failed: %s", w.Body.String())
	return vesselID
}

func TestFlow_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.registerVesselOwner(t, "asel@test.com")

	// duplicate registration rejected
	w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]string{
		"name":     "Asel",
		"email":    "asel@test.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", parseResponse(t, w).Error.Code)

	// profile reachable with the token
	w = suite.makeRequest("GET", "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	user := parseResponse(t, w).Data["user"].(map[string]interface{})
	assert.Equal(t, "asel@test.com", user["email"])
	assert.Equal(t, "vessel_owner", user["role"])

	// wrong password
	w = suite.makeRequest("POST", "/api/v1/auth/login", map[string]string{
		"email":    "asel@test.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFlow_ClubOwnerApproval(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest("POST", "/api/v1/auth/register-club-owner", map[string]string{
		"name":     "Marat",
		"email":    "marat@test.com",
		"phone":    "+7 777 000 1122",
		"password": "longenough",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// unapproved owner cannot create clubs
	ownerToken := suite.login(t, "marat@test.com", "longenough")
	w = suite.makeRequest("POST", "/api/v1/clubs", map[string]interface{}{
		"name":          "Marina",
		"season_year":   2027,
		"active_months": []int{6, 7, 8},
	}, ownerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin sees the pending owner and approves
	adminToken := suite.login(t, "admin@test.com", "admin123")
	w = suite.makeRequest("GET", "/api/v1/admin/owners/pending", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	owners := parseResponse(t, w).Data["owners"].([]interface{})
	require.Len(t, owners, 1)
	ownerID := int64(owners[0].(map[string]interface{})["id"].(float64))

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/owners/%d/approve", ownerID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = suite.makeRequest("POST", "/api/v1/clubs", map[string]interface{}{
		"name":          "Marina",
		"season_year":   2027,
		"active_months": []int{6, 7, 8},
	}, ownerToken)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFlow_BookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.createVerifiedClubOwner(t, "marat@test.com")
	clubID, berthID := suite.createClubWithBerth(t, ownerToken)

	// monthly tariff over part of the season
	w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/clubs/%d/tariffs", clubID), map[string]interface{}{
		"kind":   "monthly",
		"amount": 1000,
		"months": []int{6, 7, 8},
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tariffID := int64(parseResponse(t, w).Data["tariff"].(map[string]interface{})["id"].(float64))

	userToken := suite.registerVesselOwner(t, "asel@test.com")
	vesselID := suite.createValidatedVessel(t, userToken, "Breeze", 7, 2.5)

	w = suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"club_id":   clubID,
		"berth_id":  berthID,
		"vessel_id": vesselID,
		"tariff_id": tariffID,
	}, userToken)
	require.Equal(t, http.StatusCreated, w.Code, "booking create failed: %s", w.Body.String())
	resp := parseResponse(t, w)

	bookingData := resp.Data["booking"].(map[string]interface{})
	bookingID := int64(bookingData["id"].(float64))
	assert.Equal(t, "pending", bookingData["status"])
	assert.Equal(t, float64(3000), bookingData["total_price"])

	payments := resp.Data["payments"].([]interface{})
	require.Len(t, payments, 3)
	var sum float64
	for _, p := range payments {
		sum += p.(map[string]interface{})["amount"].(float64)
	}
	assert.Equal(t, float64(3000), sum)

	// a second vessel cannot take the same berth for the same season
	otherToken := suite.registerVesselOwner(t, "bekzat@test.com")
	otherVessel := suite.createValidatedVessel(t, otherToken, "Wave", 6, 2.2)

	w = suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"club_id":   clubID,
		"berth_id":  berthID,
		"vessel_id": otherVessel,
		"tariff_id": tariffID,
	}, otherToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "BOOKING_CONFLICT", parseResponse(t, w).Error.Code)

	// pay the first instalment, then cancellation is blocked
	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d/payments", bookingID), nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	list := parseResponse(t, w).Data["payments"].([]interface{})
	require.Len(t, list, 3)
	firstPaymentID := int64(list[0].(map[string]interface{})["id"].(float64))

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/payments/%d/pay", firstPaymentID), nil, userToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID), nil, userToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	errResp := parseResponse(t, w)
	assert.Equal(t, "PAYMENTS_NOT_PENDING", errResp.Error.Code)
	details := errResp.Error.Details.(map[string]interface{})
	assert.Equal(t, float64(1), details["blocking_payments"])

	// paying everything confirms the booking
	for _, p := range list[1:] {
		id := int64(p.(map[string]interface{})["id"].(float64))
		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/payments/%d/pay", id), nil, userToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", parseResponse(t, w).Data["booking"].(map[string]interface{})["status"])

	// paying twice is a no-op, not an error
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/payments/%d/pay", firstPaymentID), nil, userToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// club owner sees the booking
	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/clubs/%d/bookings", clubID), nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseResponse(t, w).Data["bookings"].([]interface{}), 1)
}

func TestFlow_CancelPendingBooking(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.createVerifiedClubOwner(t, "marat@test.com")
	clubID, berthID := suite.createClubWithBerth(t, ownerToken)

	userToken := suite.registerVesselOwner(t, "asel@test.com")
	vesselID := suite.createValidatedVessel(t, userToken, "Breeze", 7, 2.5)

	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"club_id":   clubID,
		"berth_id":  berthID,
		"vessel_id": vesselID,
	}, userToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := int64(parseResponse(t, w).Data["booking"].(map[string]interface{})["id"].(float64))

	// a stranger cannot cancel it
	strangerToken := suite.registerVesselOwner(t, "dina@test.com")
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID), nil, strangerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID), nil, userToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", parseResponse(t, w).Data["booking"].(map[string]interface{})["status"])

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID), nil, userToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_CANCELLED", parseResponse(t, w).Error.Code)

	// the berth is free again
	w = suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"club_id":   clubID,
		"berth_id":  berthID,
		"vessel_id": vesselID,
	}, userToken)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestFlow_OversizedVesselRejected(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.createVerifiedClubOwner(t, "marat@test.com")
	clubID, berthID := suite.createClubWithBerth(t, ownerToken) // 10 x 3.5

	userToken := suite.registerVesselOwner(t, "asel@test.com")
	vesselID := suite.createValidatedVessel(t, userToken, "Leviathan", 12, 4)

	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"club_id":   clubID,
		"berth_id":  berthID,
		"vessel_id": vesselID,
	}, userToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", parseResponse(t, w).Error.Code)
}

// An immediate-due payment left unpaid past the grace period goes overdue
// and takes its pending booking with it.
func TestFlow_PaymentExpirySweep(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.createVerifiedClubOwner(t, "marat@test.com")
	clubID, berthID := suite.createClubWithBerth(t, ownerToken)

	userToken := suite.registerVesselOwner(t, "asel@test.com")
	vesselID := suite.createValidatedVessel(t, userToken, "Breeze", 7, 2.5)

	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"club_id":   clubID,
		"berth_id":  berthID,
		"vessel_id": vesselID,
		"pay_now":   true,
	}, userToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	bookingID := int64(resp.Data["booking"].(map[string]interface{})["id"].(float64))

	// pretend the sweep runs an hour later
	stats, err := suite.sweeper.RunOnce(t.Context(), time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MarkedOverdue)
	assert.Equal(t, 1, stats.BookingsCancelled)

	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", parseResponse(t, w).Data["booking"].(map[string]interface{})["status"])

	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d/payments", bookingID), nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	payments := parseResponse(t, w).Data["payments"].([]interface{})
	require.Len(t, payments, 1)
	assert.Equal(t, "overdue", payments[0].(map[string]interface{})["status"])

	// a second sweep pass finds nothing left to do
	stats, err = suite.sweeper.RunOnce(t.Context(), time.Now().UTC().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, stats.MarkedOverdue)
	assert.Zero(t, stats.BookingsCancelled)

	// and the berth is bookable again
	w = suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"club_id":   clubID,
		"berth_id":  berthID,
		"vessel_id": vesselID,
	}, userToken)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
