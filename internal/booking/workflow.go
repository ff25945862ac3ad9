package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/apperrors"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/logger"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/metrics"
	"go.uber.org/zap"
)

// BookingAPI is the slice of the upstream client the workflow depends on.
type BookingAPI interface {
	IsRoomAvailable(ctx context.Context, roomID int, startTime, endTime string) (bool, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID int, req models.BookingRequest) (*models.Booking, error)
}

// Workflow runs booking submissions. New bookings go through an advisory
// availability pre-check against the half-open interval [start, end); edits
// of an existing booking skip the check. The check and the create are two
// separate round-trips with no server-side atomicity between them.
type Workflow struct {
	api BookingAPI
}

// NewWorkflow creates a booking workflow over the upstream client.
func NewWorkflow(api BookingAPI) *Workflow {
	return &Workflow{api: api}
}

// acceptedTimeLayouts are the encodings the booking form can produce. The
// datetime-local input drops seconds and zone.
var acceptedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// CanonicalTime normalizes a form timestamp to RFC 3339 UTC text. Values
// without an explicit zone are taken as UTC.
func CanonicalTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("%w: unrecognized time %q", apperrors.ErrInvalidInput, value)
}

// FormatTime renders a time.Time in the canonical wire encoding. Callers
// holding parsed times use this instead of re-encoding by hand.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NormalizeAttendees splits the free-text attendees field on commas, trims
// each entry and drops empty ones.
func NormalizeAttendees(raw string) []string {
	parts := strings.Split(raw, ",")
	attendees := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			attendees = append(attendees, trimmed)
		}
	}
	return attendees
}

// normalize converts a draft into the upstream payload. The draft itself is
// never mutated; it stays populated for correction when submission fails.
func normalize(draft models.BookingDraft) (models.BookingRequest, error) {
	start, err := CanonicalTime(draft.StartTime)
	if err != nil {
		return models.BookingRequest{}, err
	}
	end, err := CanonicalTime(draft.EndTime)
	if err != nil {
		return models.BookingRequest{}, err
	}

	return models.BookingRequest{
		RoomID:      draft.RoomID,
		Title:       draft.Title,
		Description: draft.Description,
		StartTime:   start,
		EndTime:     end,
		Attendees:   NormalizeAttendees(draft.Attendees),
	}, nil
}

// SubmitNew checks availability and, only when the slot is free, creates the
// booking. An occupied slot aborts before the create endpoint is touched and
// surfaces the fixed unavailability message.
func (w *Workflow) SubmitNew(ctx context.Context, draft models.BookingDraft) (*models.Booking, error) {
	req, err := normalize(draft)
	if err != nil {
		return nil, err
	}

	available, err := w.api.IsRoomAvailable(ctx, req.RoomID, req.StartTime, req.EndTime)
	if err != nil {
		metrics.AvailabilityChecks.WithLabelValues("error").Inc()
		return nil, err
	}
	if !available {
		metrics.AvailabilityChecks.WithLabelValues("unavailable").Inc()
		metrics.BookingSubmissions.WithLabelValues("unavailable").Inc()
		logger.Info("Booking rejected by availability pre-check",
			zap.Int("room_id", req.RoomID),
			zap.String("start_time", req.StartTime),
			zap.String("end_time", req.EndTime),
		)
		return nil, fmt.Errorf("room %d: %w", req.RoomID, apperrors.ErrRoomUnavailable)
	}
	metrics.AvailabilityChecks.WithLabelValues("available").Inc()

	booking, err := w.api.CreateBooking(ctx, req)
	if err != nil {
		metrics.BookingSubmissions.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.BookingSubmissions.WithLabelValues("success").Inc()
	return booking, nil
}

// SubmitUpdate replaces an existing booking. Editing is assumed
// pre-validated, so no availability check runs here.
func (w *Workflow) SubmitUpdate(ctx context.Context, bookingID int, draft models.BookingDraft) (*models.Booking, error) {
	req, err := normalize(draft)
	if err != nil {
		return nil, err
	}
	return w.api.UpdateBooking(ctx, bookingID, req)
}
