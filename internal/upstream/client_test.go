package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "bob", creds.Username)

		// Extraneous fields must not break profile construction
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"t1","userId":5,"username":"bob","fullName":"Bob B","isAdmin":false,"expiresIn":3600,"refreshToken":"r1"}`))
	}))

	resp, err := client.Login(context.Background(), models.Credentials{Username: "bob", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.Token)
	assert.Equal(t, 5, resp.UserID)
	assert.Equal(t, "Bob B", resp.FullName)
	assert.False(t, resp.IsAdmin)
}

func TestClient_IsRoomAvailable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bookings/room/3/available", r.URL.Path)
		assert.Equal(t, "2026-09-01T09:00:00Z", r.URL.Query().Get("startTime"))
		assert.Equal(t, "2026-09-01T10:00:00Z", r.URL.Query().Get("endTime"))
		w.Write([]byte(`false`))
	}))

	available, err := client.IsRoomAvailable(context.Background(), 3, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestClient_GetAvailableRooms(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rooms/available", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("capacity"))
		w.Write([]byte(`[{"id":1,"name":"Boardroom","capacity":12}]`))
	}))

	rooms, err := client.GetAvailableRooms(context.Background(), "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z", 4)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Boardroom", rooms[0].Name)
}

func TestClient_GetAvailableRooms_OmitsZeroCapacity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["capacity"]
		assert.False(t, present)
		w.Write([]byte(`[]`))
	}))

	_, err := client.GetAvailableRooms(context.Background(), "a", "b", 0)
	require.NoError(t, err)
}

func TestClient_CreateBooking(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/bookings", r.URL.Path)

		var req models.BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"a@x.com", "b@y.com"}, req.Attendees)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42,"roomId":3,"title":"Standup"}`))
	}))

	booking, err := client.CreateBooking(context.Background(), models.BookingRequest{
		RoomID:    3,
		Title:     "Standup",
		StartTime: "2026-09-01T09:00:00Z",
		EndTime:   "2026-09-01T09:15:00Z",
		Attendees: []string{"a@x.com", "b@y.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, booking.ID)
}

func TestClient_DeleteBooking(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/bookings/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteBooking(context.Background(), 7))
}

func TestClient_GetRoomAvailability(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rooms/3/availability", r.URL.Path)
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))
		w.Write([]byte(`{"roomId":3,"date":"2026-09-01","slots":[{"startTime":"2026-09-01T09:00:00Z","endTime":"2026-09-01T10:00:00Z","isAvailable":false,"booking":{"id":1,"title":"Planning"}}]}`))
	}))

	availability, err := client.GetRoomAvailability(context.Background(), 3, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, availability.Slots, 1)
	assert.False(t, availability.Slots[0].IsAvailable)
	require.NotNil(t, availability.Slots[0].Booking)
	assert.Equal(t, "Planning", availability.Slots[0].Booking.Title)
}

func TestClient_PromoteUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/usermanagement/9/promote", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.PromoteUser(context.Background(), 9))
}
