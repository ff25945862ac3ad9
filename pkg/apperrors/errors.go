package apperrors

import (
	"errors"
	"fmt"
)

// Error taxonomy for the gateway. Session expiry is the only globally handled
// failure; everything else is recovered at the calling handler.

var (
	// ErrSessionExpired indicates the upstream API rejected the bearer token
	// (401). The session store has already been cleared by the time callers
	// see this error; the HTTP layer must redirect to the login entry point.
	ErrSessionExpired = errors.New("session expired")

	// ErrRoomUnavailable indicates the requested room is booked for the
	// selected time slot.
	ErrRoomUnavailable = errors.New("room unavailable")

	// ErrNotFound indicates a requested resource was not found upstream.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the upstream API rejected the payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUpstream indicates a transient upstream or network failure.
	ErrUpstream = errors.New("upstream unavailable")
)

// RoomUnavailableMessage is the fixed user-facing message surfaced when the
// availability pre-check fails.
const RoomUnavailableMessage = "This room is not available for the selected time slot."

// UpstreamError wraps an upstream failure with the HTTP status that caused it.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError maps an upstream HTTP status to the error taxonomy.
func NewUpstreamError(status int, message string) error {
	var sentinel error
	switch status {
	case 401:
		sentinel = ErrSessionExpired
	case 403:
		sentinel = ErrForbidden
	case 404:
		sentinel = ErrNotFound
	case 400, 422:
		sentinel = ErrInvalidInput
	case 409:
		sentinel = ErrRoomUnavailable
	default:
		sentinel = ErrUpstream
	}
	return &UpstreamError{Status: status, Message: message, Err: sentinel}
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
