package models

import "time"

// Room describes a bookable meeting room.
type Room struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// TimeSlot is one entry of a room's per-day availability calendar. Slots are
// half-open intervals: the start instant is included, the end instant is not.
type TimeSlot struct {
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	IsAvailable bool            `json:"isAvailable"`
	Booking     *BookingSummary `json:"booking,omitempty"`
}

// RoomAvailability is the availability calendar for one room on one date.
type RoomAvailability struct {
	RoomID int        `json:"roomId"`
	Date   string     `json:"date"`
	Slots  []TimeSlot `json:"slots"`
}
