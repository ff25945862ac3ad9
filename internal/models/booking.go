package models

import "time"

// Booking is a confirmed reservation as returned by the upstream API.
type Booking struct {
	ID            int       `json:"id"`
	RoomID        int       `json:"roomId"`
	RoomName      string    `json:"roomName"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Attendees     []string  `json:"attendees"`
	CreatedBy     int       `json:"createdBy"`
	CreatedByName string    `json:"createdByName"`
}

// BookingSummary is the trimmed booking shown inside availability slots.
type BookingSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// BookingDraft is the transient form state of the booking page. Attendees is
// free text, comma delimited; it is normalized to a list only at submit time.
type BookingDraft struct {
	RoomID      int    `json:"roomId" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Attendees   string `json:"attendees"`
}

// BookingRequest is the normalized payload sent to the upstream create and
// update endpoints.
type BookingRequest struct {
	RoomID      int      `json:"roomId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Attendees   []string `json:"attendees"`
}
