package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/andray-nkhatel/meeting-room-frontend/config"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/middleware"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/gin-gonic/gin"
)

// BookingService is the slice of the upstream client the booking pages read
// from.
type BookingService interface {
	GetAllBookings(ctx context.Context) ([]models.Booking, error)
	GetBookingByID(ctx context.Context, bookingID int) (*models.Booking, error)
	GetBookingsByRoom(ctx context.Context, roomID int) ([]models.Booking, error)
	IsRoomAvailable(ctx context.Context, roomID int, startTime, endTime string) (bool, error)
	DeleteBooking(ctx context.Context, bookingID int) error
	GetTodaysMeetings(ctx context.Context) ([]models.Booking, error)
}

// BookingSubmitter runs the create and update workflows.
type BookingSubmitter interface {
	SubmitNew(ctx context.Context, draft models.BookingDraft) (*models.Booking, error)
	SubmitUpdate(ctx context.Context, bookingID int, draft models.BookingDraft) (*models.Booking, error)
}

type BookingHandler struct {
	bookings   BookingService
	workflow   BookingSubmitter
	sessionCfg config.SessionConfig
}

func NewBookingHandler(bookings BookingService, workflow BookingSubmitter, sessionCfg config.SessionConfig) *BookingHandler {
	return &BookingHandler{
		bookings:   bookings,
		workflow:   workflow,
		sessionCfg: sessionCfg,
	}
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookings.GetAllBookings(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid booking ID", err)
		return
	}

	booking, err := h.bookings.GetBookingByID(c.Request.Context(), bookingID)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) BookingsByRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid room ID", err)
		return
	}

	bookings, err := h.bookings.GetBookingsByRoom(c.Request.Context(), roomID)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// MyBookings lists the bookings the logged-in user created. The upstream API
// has no per-user endpoint, so the full list is filtered by creator here.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	manager, err := middleware.GetSessionManager(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	user := manager.CurrentUser()
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Not logged in", nil)
		return
	}

	bookings, err := h.bookings.GetAllBookings(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	mine := make([]models.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.CreatedBy == user.UserID || booking.CreatedByName == user.Username {
			mine = append(mine, booking)
		}
	}

	c.JSON(http.StatusOK, mine)
}

// CheckAvailability proxies the slot availability probe used by the booking
// form before submission.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid room ID", err)
		return
	}

	startTime := c.Query("startTime")
	endTime := c.Query("endTime")
	if startTime == "" || endTime == "" {
		respondError(c, http.StatusBadRequest, "startTime and endTime are required", nil)
		return
	}

	available, err := h.bookings.IsRoomAvailable(c.Request.Context(), roomID, startTime, endTime)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

// CreateBooking runs the submission workflow: availability pre-check, then
// create. An occupied slot comes back as 409 with the fixed message and the
// create endpoint is never called.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var draft models.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	booking, err := h.workflow.SubmitNew(c.Request.Context(), draft)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// UpdateBooking replaces an existing booking without the availability
// pre-check.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid booking ID", err)
		return
	}

	var draft models.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	booking, err := h.workflow.SubmitUpdate(c.Request.Context(), bookingID, draft)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid booking ID", err)
		return
	}

	if err := h.bookings.DeleteBooking(c.Request.Context(), bookingID); err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.Status(http.StatusNoContent)
}

// TodaysMeetings backs the dashboard list of meetings happening today (UTC).
func (h *BookingHandler) TodaysMeetings(c *gin.Context) {
	bookings, err := h.bookings.GetTodaysMeetings(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, bookings)
}
