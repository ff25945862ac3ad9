package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
)

// GetAllRooms fetches every meeting room.
func (c *Client) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.get(ctx, "getAllRooms", "/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetRoomByID fetches a single room.
func (c *Client) GetRoomByID(ctx context.Context, roomID int) (*models.Room, error) {
	var room models.Room
	if err := c.get(ctx, "getRoomById", fmt.Sprintf("/rooms/%d", roomID), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetAvailableRooms fetches rooms free over the given time slot, optionally
// filtered by minimum capacity. Timestamps are ISO-8601 text.
func (c *Client) GetAvailableRooms(ctx context.Context, startTime, endTime string, capacity int) ([]models.Room, error) {
	query := url.Values{}
	query.Set("startTime", startTime)
	query.Set("endTime", endTime)
	if capacity > 0 {
		query.Set("capacity", strconv.Itoa(capacity))
	}

	var rooms []models.Room
	if err := c.get(ctx, "getAvailableRooms", "/rooms/available", query, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetRoomAvailability fetches the per-slot availability calendar for a room
// on a specific date.
func (c *Client) GetRoomAvailability(ctx context.Context, roomID int, date string) (*models.RoomAvailability, error) {
	query := url.Values{}
	query.Set("date", date)

	var availability models.RoomAvailability
	if err := c.get(ctx, "getRoomAvailability", fmt.Sprintf("/rooms/%d/availability", roomID), query, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}
