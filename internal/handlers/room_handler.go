package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/andray-nkhatel/meeting-room-frontend/config"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/gin-gonic/gin"
)

// RoomService is the slice of room lookups the handler depends on. Metadata
// reads go through the cache; availability always hits upstream.
type RoomService interface {
	GetAll(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, roomID int) (*models.Room, error)
}

// RoomAvailabilityService queries time-sensitive room data upstream.
type RoomAvailabilityService interface {
	GetAvailableRooms(ctx context.Context, startTime, endTime string, capacity int) ([]models.Room, error)
	GetRoomAvailability(ctx context.Context, roomID int, date string) (*models.RoomAvailability, error)
}

type RoomHandler struct {
	rooms        RoomService
	availability RoomAvailabilityService
	sessionCfg   config.SessionConfig
}

func NewRoomHandler(rooms RoomService, availability RoomAvailabilityService, sessionCfg config.SessionConfig) *RoomHandler {
	return &RoomHandler{
		rooms:        rooms,
		availability: availability,
		sessionCfg:   sessionCfg,
	}
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.rooms.GetAll(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid room ID", err)
		return
	}

	room, err := h.rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, room)
}

// AvailableRooms lists rooms free for a given window, optionally filtered by
// capacity. Results are live upstream data and bypass the room cache.
func (h *RoomHandler) AvailableRooms(c *gin.Context) {
	startTime := c.Query("startTime")
	endTime := c.Query("endTime")
	if startTime == "" || endTime == "" {
		respondError(c, http.StatusBadRequest, "startTime and endTime are required", nil)
		return
	}

	capacity := 0
	if raw := c.Query("capacity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "Invalid capacity", err)
			return
		}
		capacity = parsed
	}

	rooms, err := h.availability.GetAvailableRooms(c.Request.Context(), startTime, endTime, capacity)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// RoomAvailability returns the slot grid for one room on one day. Defaults
// to today in UTC when no date is given.
func (h *RoomHandler) RoomAvailability(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid room ID", err)
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	availability, err := h.availability.GetRoomAvailability(c.Request.Context(), roomID, date)
	if err != nil {
		respondUpstreamError(c, err, h.sessionCfg)
		return
	}

	c.JSON(http.StatusOK, availability)
}
