package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Booking represents a seat reservation for an event, identified by the
// signup email. Many bookings may reference one event; the event holds no
// back-references.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a Booking for the given event and email. ID is set by
// the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

var emailFormat = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lower-cases raw and validates it against the
// standard email pattern. Invalid input returns ErrValidation.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailFormat.MatchString(email) {
		return "", fmt.Errorf("%w: %q is not a valid email address", ErrValidation, raw)
	}
	return email, nil
}

// BookingRepository defines storage operations for bookings. ListByEventID is
// the dominant query and is backed by an index on event_id.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
}

// BookingService defines booking operations exposed to the delivery layer.
type BookingService interface {
	// CreateBooking validates the email and verifies the referenced event
	// exists before persisting. A missing event returns ErrEventNotFound
	// and nothing is written.
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	ListBookingsByEvent(ctx context.Context, eventID string) ([]*Booking, error)
}
