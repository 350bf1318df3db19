package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quickcourt/internal/database"
	"quickcourt/internal/domain"
	"quickcourt/internal/middleware"
	"quickcourt/internal/modules/booking"
	"quickcourt/internal/modules/catalog"
	"quickcourt/internal/modules/review"
	jwtsvc "quickcourt/internal/pkg/jwt"
	"quickcourt/internal/pkg/timeslot"
	"quickcourt/internal/repository"
)

// fixture dates: 2030-01-07 is a Monday, 2020-01-06 is long gone
const (
	futureDate = "2030-01-07"
	pastDate   = "2020-01-06"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service

	owner  *domain.User
	player *domain.User
	admin  *domain.User
	venue  *domain.Venue
	court  *domain.Court
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
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	blockedRepo := repository.NewBlockedWindowRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	bookingService := booking.NewService(
		bookingRepo,
		courtRepo,
		availabilityRepo,
		blockedRepo,
		venueRepo,
		booking.NewCalendarResolver(nil),
		nil,
	)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(venueRepo, courtRepo, availabilityRepo, blockedRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reviewService := review.NewService(reviewRepo, venueRepo)
	reviewHandler := review.NewHandler(reviewService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	public := v1.Group("/")
	public.Use(middleware.ResponseCache(nil, time.Second))
	{
		bookingHandler.RegisterPublicRoutes(public)
		catalogHandler.RegisterPublicRoutes(public)
		reviewHandler.RegisterPublicRoutes(public)
	}

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		bookingHandler.RegisterRoutes(protected)
		reviewHandler.RegisterRoutes(protected)
	}

	ownerGroup := v1.Group("/owner")
	ownerGroup.Use(middleware.JWTAuth(jwtService), middleware.OwnerOnly())
	{
		catalogHandler.RegisterOwnerRoutes(ownerGroup)
	}

	suite := &E2ETestSuite{router: r, db: db, jwtService: jwtService}
	suite.seedFixtures(t, userRepo, venueRepo, courtRepo, availabilityRepo)
	return suite
}

// seedFixtures creates one approved venue with a single court and three
// hourly weekday windows at 500/hour: 17:00, 18:00, 19:00.
func (s *E2ETestSuite) seedFixtures(t *testing.T, users *repository.UserRepository, venues *repository.VenueRepository, courts *repository.CourtRepository, windows *repository.AvailabilityRepository) {
	ctx := context.Background()

	s.owner = &domain.User{Email: "owner@test.com", PasswordHash: "$2a$10$dummy", Name: "Owner", Role: domain.RoleOwner}
	s.player = &domain.User{Email: "player@test.com", PasswordHash: "$2a$10$dummy", Name: "Player", Role: domain.RoleUser}
	s.admin = &domain.User{Email: "admin@test.com", PasswordHash: "$2a$10$dummy", Name: "Admin", Role: domain.RoleAdmin}
	for _, u := range []*domain.User{s.owner, s.player, s.admin} {
		require.NoError(t, users.Create(ctx, u))
	}

	s.venue = &domain.Venue{
		OwnerID:              s.owner.ID,
		Name:                 "Shrimad Sports",
		City:                 "Ahmedabad",
		StartingPricePerHour: 500,
		IsApproved:           true,
	}
	require.NoError(t, venues.Create(ctx, s.venue))

	s.court = &domain.Court{VenueID: s.venue.ID, SportID: 1, Name: "Badminton Court 1"}
	require.NoError(t, courts.Create(ctx, s.court))

	for h := 17; h < 20; h++ {
		w := &domain.AvailabilityWindow{
			CourtID:      s.court.ID,
			DayType:      domain.DayWeekday,
			StartTime:    timeslot.Clock(h * 60),
			EndTime:      timeslot.Clock((h + 1) * 60),
			PricePerHour: 500,
		}
		require.NoError(t, windows.Create(ctx, w))
	}
}

func (s *E2ETestSuite) token(t *testing.T, u *domain.User) string {
	tok, err := s.jwtService.GenerateToken(u.ID, string(u.Role))
	require.NoError(t, err)
	return tok
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
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
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Body: %s", w.Body.String())
	return &resp
}

func (s *E2ETestSuite) slotsPath() string {
	return fmt.Sprintf("/api/v1/courts/%d/slots?date=%s", s.court.ID, futureDate)
}

func (s *E2ETestSuite) listSlots(t *testing.T) []interface{} {
	w := s.makeRequest(t, "GET", s.slotsPath(), nil, "")
	require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
	resp := parseResponse(t, w)
	require.True(t, resp.Success)
	slots, ok := resp.Data["slots"].([]interface{})
	require.True(t, ok)
	return slots
}

func bookingBody(courtID int64, date, start, end string) map[string]interface{} {
	return map[string]interface{}{
		"date": date,
		"court_slots": []map[string]interface{}{
			{"court_id": courtID, "slot_start": start, "slot_end": end},
		},
	}
}

func TestFlow_SlotListingAndBooking(t *testing.T) {
	suite := setupTestSuite(t)
	playerToken := suite.token(t, suite.player)

	t.Run("GET slots lists all free windows", func(t *testing.T) {
		slots := suite.listSlots(t)
		require.Len(t, slots, 3)

		first := slots[0].(map[string]interface{})
		assert.Equal(t, "17:00:00", first["start_time"])
		assert.Equal(t, "18:00:00", first["end_time"])
		assert.Equal(t, float64(500), first["price_per_hour"])
	})

	t.Run("GET venue slots groups by court", func(t *testing.T) {
		w := suite.makeRequest(t, "GET",
			fmt.Sprintf("/api/v1/venues/%d/slots?date=%s", suite.venue.ID, futureDate), nil, "")
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		resp := parseResponse(t, w)
		courts := resp.Data["courts"].([]interface{})
		require.Len(t, courts, 1)
		court := courts[0].(map[string]interface{})
		assert.Equal(t, "Badminton Court 1", court["court_name"])
		assert.Len(t, court["slots"].([]interface{}), 3)
	})

	t.Run("GET venue slots with foreign sport filter is empty", func(t *testing.T) {
		w := suite.makeRequest(t, "GET",
			fmt.Sprintf("/api/v1/venues/%d/slots?date=%s&sport_id=99", suite.venue.ID, futureDate), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, parseResponse(t, w).Data["courts"])
	})

	t.Run("POST booking succeeds with price times duration", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings",
			bookingBody(suite.court.ID, futureDate, "18:00", "19:00"), playerToken)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

		resp := parseResponse(t, w)
		require.True(t, resp.Success)
		assert.Equal(t, float64(500), resp.Data["total_price"])

		bookings := resp.Data["bookings"].([]interface{})
		require.Len(t, bookings, 1)
		b := bookings[0].(map[string]interface{})
		assert.Equal(t, "pending", b["status"])
		assert.Equal(t, "18:00:00", b["slot_start"])
	})

	t.Run("booked slot disappears from listing", func(t *testing.T) {
		slots := suite.listSlots(t)
		require.Len(t, slots, 2)
		for _, raw := range slots {
			slot := raw.(map[string]interface{})
			assert.NotEqual(t, "18:00:00", slot["start_time"])
		}
	})

	t.Run("identical second booking conflicts", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings",
			bookingBody(suite.court.ID, futureDate, "18:00", "19:00"), playerToken)
		require.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "SLOT_TAKEN", resp.Error.Code)
	})

	t.Run("overlapping booking conflicts even without exact match", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings",
			bookingBody(suite.court.ID, futureDate, "18:30", "19:30"), playerToken)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "SLOT_TAKEN", parseResponse(t, w).Error.Code)
	})

	t.Run("slot without declared window is rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings",
			bookingBody(suite.court.ID, futureDate, "07:00", "08:00"), playerToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "NO_AVAILABILITY_WINDOW", parseResponse(t, w).Error.Code)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings",
			bookingBody(suite.court.ID, pastDate, "18:00", "19:00"), playerToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", parseResponse(t, w).Error.Code)
	})
}

func TestFlow_BlockedWindows(t *testing.T) {
	suite := setupTestSuite(t)
	ownerToken := suite.token(t, suite.owner)
	playerToken := suite.token(t, suite.player)

	blockPath := fmt.Sprintf("/api/v1/owner/courts/%d/blocked", suite.court.ID)

	t.Run("owner blocks a window", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", blockPath, map[string]interface{}{
			"date": futureDate, "start_time": "18:30", "end_time": "19:30", "reason": "maintenance",
		}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("identical block is rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", blockPath, map[string]interface{}{
			"date": futureDate, "start_time": "18:30", "end_time": "19:30",
		}, ownerToken)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "DUPLICATE_BLOCK", parseResponse(t, w).Error.Code)
	})

	t.Run("player role cannot block", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", blockPath, map[string]interface{}{
			"date": futureDate, "start_time": "10:00", "end_time": "11:00",
		}, playerToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("booking overlapping the block conflicts and persists nothing", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings",
			bookingBody(suite.court.ID, futureDate, "18:00", "19:00"), playerToken)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "SLOT_BLOCKED", parseResponse(t, w).Error.Code)

		var count int64
		suite.db.Table("bookings").Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("slots overlapped by the block are not listed", func(t *testing.T) {
		slots := suite.listSlots(t)
		// 18:30-19:30 knocks out both the 18:00 and 19:00 windows
		require.Len(t, slots, 1)
		assert.Equal(t, "17:00:00", slots[0].(map[string]interface{})["start_time"])
	})
}

func TestFlow_CancelBooking(t *testing.T) {
	suite := setupTestSuite(t)
	playerToken := suite.token(t, suite.player)
	ownerToken := suite.token(t, suite.owner)
	adminToken := suite.token(t, suite.admin)

	w := suite.makeRequest(t, "POST", "/api/v1/bookings",
		bookingBody(suite.court.ID, futureDate, "18:00", "19:00"), playerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	bookingID := int64(resp.Data["bookings"].([]interface{})[0].(map[string]interface{})["id"].(float64))

	t.Run("stranger cannot cancel", func(t *testing.T) {
		stranger := &domain.User{Email: "other@test.com", PasswordHash: "$2a$10$dummy", Name: "Other", Role: domain.RoleUser}
		require.NoError(t, suite.db.Create(stranger).Error)

		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, suite.token(t, stranger))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("venue owner cancels and the slot reopens", func(t *testing.T) {
		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		slots := suite.listSlots(t)
		assert.Len(t, slots, 3)
	})

	t.Run("cancelled booking cannot be cancelled again", func(t *testing.T) {
		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, adminToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("started booking is immutable", func(t *testing.T) {
		past := &domain.Booking{
			UserID: suite.player.ID, CourtID: suite.court.ID,
			Date: pastDate, SlotStart: timeslot.Clock(18 * 60), SlotEnd: timeslot.Clock(19 * 60),
			Status: domain.BookingConfirmed, Price: 500,
		}
		bookingRepo := repository.NewBookingRepository(suite.db)
		require.NoError(t, bookingRepo.CreateBatch(context.Background(), []*domain.Booking{past}))

		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/bookings/%d", past.ID), nil, playerToken)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ALREADY_STARTED", parseResponse(t, w).Error.Code)
	})
}

func TestFlow_MyBookings(t *testing.T) {
	suite := setupTestSuite(t)
	playerToken := suite.token(t, suite.player)

	past := &domain.Booking{
		UserID: suite.player.ID, CourtID: suite.court.ID,
		Date: pastDate, SlotStart: timeslot.Clock(18 * 60), SlotEnd: timeslot.Clock(19 * 60),
		Status: domain.BookingCompleted, Price: 500,
	}
	bookingRepo := repository.NewBookingRepository(suite.db)
	require.NoError(t, bookingRepo.CreateBatch(context.Background(), []*domain.Booking{past}))

	w := suite.makeRequest(t, "POST", "/api/v1/bookings",
		bookingBody(suite.court.ID, futureDate, "18:00", "19:00"), playerToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.makeRequest(t, "GET", "/api/v1/bookings/my", nil, playerToken)
	require.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	require.True(t, resp.Success)
	assert.Len(t, resp.Data["past"].([]interface{}), 1)
	assert.Len(t, resp.Data["upcoming"].([]interface{}), 1)
}

func TestFlow_OwnerManagement(t *testing.T) {
	suite := setupTestSuite(t)
	ownerToken := suite.token(t, suite.owner)
	playerToken := suite.token(t, suite.player)

	var newCourtID int64

	t.Run("owner creates a court", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", fmt.Sprintf("/api/v1/owner/venues/%d/courts", suite.venue.ID),
			map[string]interface{}{"name": "Tennis Court", "sport_id": 2}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
		newCourtID = int64(parseResponse(t, w).Data["id"].(float64))
	})

	t.Run("owner declares availability", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", fmt.Sprintf("/api/v1/owner/courts/%d/availability", newCourtID),
			map[string]interface{}{"day_type": "weekday", "start_time": "09:00", "end_time": "12:00", "price_per_hour": 800}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("overlapping window is rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", fmt.Sprintf("/api/v1/owner/courts/%d/availability", newCourtID),
			map[string]interface{}{"day_type": "weekday", "start_time": "11:00", "end_time": "13:00", "price_per_hour": 800}, ownerToken)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "WINDOW_OVERLAP", parseResponse(t, w).Error.Code)
	})

	t.Run("venue detail embeds courts and windows", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/venues/%d", suite.venue.ID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		courts := resp.Data["courts"].([]interface{})
		require.Len(t, courts, 2)
	})

	t.Run("owner sees venue bookings", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings",
			bookingBody(newCourtID, futureDate, "09:00", "12:00"), playerToken)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
		assert.Equal(t, float64(2400), parseResponse(t, w).Data["total_price"])

		w = suite.makeRequest(t, "GET", "/api/v1/owner/bookings", nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)
		bookings := parseResponse(t, w).Data["bookings"].([]interface{})
		require.Len(t, bookings, 1)
	})
}

func TestFlow_Reviews(t *testing.T) {
	suite := setupTestSuite(t)
	playerToken := suite.token(t, suite.player)

	reviewPath := fmt.Sprintf("/api/v1/venues/%d/reviews", suite.venue.ID)

	t.Run("player reviews the venue", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", reviewPath,
			map[string]interface{}{"rating": 4, "comment": "Great courts"}, playerToken)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("rating aggregate is refreshed", func(t *testing.T) {
		var rating float64
		suite.db.Table("venues").Select("rating").Where("id = ?", suite.venue.ID).Scan(&rating)
		assert.Equal(t, float64(4), rating)
	})

	t.Run("second review from the same user is rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", reviewPath,
			map[string]interface{}{"rating": 5}, playerToken)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ALREADY_REVIEWED", parseResponse(t, w).Error.Code)
	})

	t.Run("reviews are listed publicly", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", reviewPath, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		reviews := parseResponse(t, w).Data["reviews"].([]interface{})
		require.Len(t, reviews, 1)
	})
}

func TestBookingIndex_RejectsDuplicateSlotInsert(t *testing.T) {
	suite := setupTestSuite(t)
	bookingRepo := repository.NewBookingRepository(suite.db)

	slot := func() *domain.Booking {
		return &domain.Booking{
			UserID: suite.player.ID, CourtID: suite.court.ID,
			Date: futureDate, SlotStart: timeslot.Clock(18 * 60), SlotEnd: timeslot.Clock(19 * 60),
			Status: domain.BookingPending, Price: 500,
		}
	}

	first := slot()
	require.NoError(t, bookingRepo.CreateBatch(context.Background(), []*domain.Booking{first}))

	t.Run("second insert of the same slot fails at the database", func(t *testing.T) {
		err := bookingRepo.CreateBatch(context.Background(), []*domain.Booking{slot()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UNIQUE constraint failed")
	})

	t.Run("cancelling releases the slot for a fresh insert", func(t *testing.T) {
		require.NoError(t, bookingRepo.Cancel(context.Background(), first.ID))
		require.NoError(t, bookingRepo.CreateBatch(context.Background(), []*domain.Booking{slot()}))
	})
}
