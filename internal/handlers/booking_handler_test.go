package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/middleware"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/session"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/storage"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, bookingID int) (*models.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) GetBookingsByRoom(ctx context.Context, roomID int) ([]models.Booking, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingService) IsRoomAvailable(ctx context.Context, roomID int, startTime, endTime string) (bool, error) {
	args := m.Called(ctx, roomID, startTime, endTime)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingService) DeleteBooking(ctx context.Context, bookingID int) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingService) GetTodaysMeetings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockBookingSubmitter struct {
	mock.Mock
}

func (m *MockBookingSubmitter) SubmitNew(ctx context.Context, draft models.BookingDraft) (*models.Booking, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingSubmitter) SubmitUpdate(ctx context.Context, bookingID int, draft models.BookingDraft) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func bookingRouter(svc *MockBookingService, wf *MockBookingSubmitter) *gin.Engine {
	handler := NewBookingHandler(svc, wf, testSessionConfig())

	router := gin.New()
	router.GET("/bookings", handler.ListBookings)
	router.GET("/bookings/:id", handler.GetBooking)
	router.GET("/bookings/room/:id", handler.BookingsByRoom)
	router.GET("/bookings/room/:id/available", handler.CheckAvailability)
	router.GET("/bookings/today", handler.TodaysMeetings)
	router.POST("/bookings", handler.CreateBooking)
	router.PUT("/bookings/:id", handler.UpdateBooking)
	router.DELETE("/bookings/:id", handler.DeleteBooking)
	return router
}

// myBookingsRouter mounts the handler behind a hydrated session manager, the
// way the browser-session middleware presents it to authenticated routes.
func myBookingsRouter(svc *MockBookingService, user *models.UserProfile) *gin.Engine {
	store := session.NewStore(storage.NewMemoryStore())
	if user != nil {
		if err := store.Save("test-token", user); err != nil {
			panic(err)
		}
	}
	manager := session.NewManager(store, new(MockAuthAPI))

	handler := NewBookingHandler(svc, new(MockBookingSubmitter), testSessionConfig())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.SessionManagerContextKey, manager)
		c.Next()
	})
	router.GET("/bookings/my", handler.MyBookings)
	return router
}

func validDraftJSON() gin.H {
	return gin.H{
		"roomId":      3,
		"title":       "Sprint planning",
		"startTime":   "2025-11-03T09:00",
		"endTime":     "2025-11-03T10:00",
		"attendees":   "a@x.com, b@y.com",
		"description": "",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	wf := new(MockBookingSubmitter)
	wf.On("SubmitNew", mock.Anything, mock.Anything).
		Return(&models.Booking{ID: 42, RoomID: 3, Title: "Sprint planning"}, nil)

	router := bookingRouter(new(MockBookingService), wf)
	w := postJSON(router, "/bookings", validDraftJSON())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":42`)
}

func TestCreateBooking_UnavailableIs409WithFixedMessage(t *testing.T) {
	wf := new(MockBookingSubmitter)
	wf.On("SubmitNew", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("room 3: %w", apperrors.ErrRoomUnavailable))

	router := bookingRouter(new(MockBookingService), wf)
	w := postJSON(router, "/bookings", validDraftJSON())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.RoomUnavailableMessage)
}

func TestCreateBooking_MissingTitleIs400(t *testing.T) {
	wf := new(MockBookingSubmitter)
	router := bookingRouter(new(MockBookingService), wf)

	payload := validDraftJSON()
	delete(payload, "title")
	w := postJSON(router, "/bookings", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	wf.AssertNotCalled(t, "SubmitNew", mock.Anything, mock.Anything)
}

func TestListBookings_SessionExpiredRedirectsToLogin(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("GetAllBookings", mock.Anything).
		Return(nil, apperrors.NewUpstreamError(401, ""))

	router := bookingRouter(svc, new(MockBookingSubmitter))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/bookings", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
	}
}

func TestMyBookings_FiltersByCurrentUser(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("GetAllBookings", mock.Anything).Return([]models.Booking{
		{ID: 1, Title: "Standup", CreatedBy: 5},
		{ID: 2, Title: "All hands", CreatedBy: 9, CreatedByName: "alice"},
		{ID: 3, Title: "1:1", CreatedByName: "bob"},
	}, nil)

	user := &models.UserProfile{UserID: 5, Username: "bob", FullName: "Bob B"}
	router := myBookingsRouter(svc, user)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/bookings/my", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)
	assert.Contains(t, w.Body.String(), `"id":3`)
	assert.NotContains(t, w.Body.String(), `"id":2`)
}

func TestMyBookings_AnonymousIs401(t *testing.T) {
	svc := new(MockBookingService)
	router := myBookingsRouter(svc, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/bookings/my", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "GetAllBookings", mock.Anything)
}

func TestCheckAvailability_ReturnsVerdict(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("IsRoomAvailable", mock.Anything, 3, "2025-11-03T09:00:00Z", "2025-11-03T10:00:00Z").
		Return(false, nil)

	router := bookingRouter(svc, new(MockBookingSubmitter))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bookings/room/3/available?startTime=2025-11-03T09%3A00%3A00Z&endTime=2025-11-03T10%3A00%3A00Z", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available": false}`, w.Body.String())
}

func TestCheckAvailability_MissingWindowIs400(t *testing.T) {
	router := bookingRouter(new(MockBookingService), new(MockBookingSubmitter))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/bookings/room/3/available", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBooking_GoesThroughWorkflow(t *testing.T) {
	wf := new(MockBookingSubmitter)
	wf.On("SubmitUpdate", mock.Anything, 7, mock.Anything).
		Return(&models.Booking{ID: 7, RoomID: 3, Title: "Sprint planning"}, nil)

	router := bookingRouter(new(MockBookingService), wf)
	w := putJSON(router, "/bookings/7", validDraftJSON())

	assert.Equal(t, http.StatusOK, w.Code)
	wf.AssertExpectations(t)
}

func TestDeleteBooking_NoContent(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("DeleteBooking", mock.Anything, 7).Return(nil)

	router := bookingRouter(svc, new(MockBookingSubmitter))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/bookings/7", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetBooking_InvalidIDIs400(t *testing.T) {
	router := bookingRouter(new(MockBookingService), new(MockBookingSubmitter))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/bookings/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
