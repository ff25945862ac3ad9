package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
)

// GetAllBookings fetches every booking visible to the caller.
func (c *Client) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "getAllBookings", "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingByID fetches a single booking.
func (c *Client) GetBookingByID(ctx context.Context, bookingID int) (*models.Booking, error) {
	var booking models.Booking
	if err := c.get(ctx, "getBookingById", fmt.Sprintf("/bookings/%d", bookingID), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBookingsByRoom fetches the bookings of one room.
func (c *Client) GetBookingsByRoom(ctx context.Context, roomID int) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "getBookingsByRoomId", fmt.Sprintf("/bookings/room/%d", roomID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// IsRoomAvailable asks whether the room is free over the half-open interval
// [startTime, endTime). The result is advisory: nothing stops another client
// from booking the slot between this check and a subsequent create.
func (c *Client) IsRoomAvailable(ctx context.Context, roomID int, startTime, endTime string) (bool, error) {
	query := url.Values{}
	query.Set("startTime", startTime)
	query.Set("endTime", endTime)

	var available bool
	if err := c.get(ctx, "isRoomAvailable", fmt.Sprintf("/bookings/room/%d/available", roomID), query, &available); err != nil {
		return false, err
	}
	return available, nil
}

// CreateBooking submits a new booking.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.send(ctx, "createBooking", http.MethodPost, "/bookings", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking replaces an existing booking.
func (c *Client) UpdateBooking(ctx context.Context, bookingID int, req models.BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.send(ctx, "updateBooking", http.MethodPut, fmt.Sprintf("/bookings/%d", bookingID), nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// DeleteBooking cancels a booking.
func (c *Client) DeleteBooking(ctx context.Context, bookingID int) error {
	return c.send(ctx, "deleteBooking", http.MethodDelete, fmt.Sprintf("/bookings/%d", bookingID), nil, nil, nil)
}

// GetTodaysMeetings fetches the bookings scheduled for today (UTC date).
func (c *Client) GetTodaysMeetings(ctx context.Context) ([]models.Booking, error) {
	query := url.Values{}
	query.Set("date", time.Now().UTC().Format("2006-01-02"))

	var bookings []models.Booking
	if err := c.get(ctx, "getTodaysMeetings", "/bookings/today", query, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
