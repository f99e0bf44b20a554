package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"devevent/internal/domain"
	"devevent/internal/metrics"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// CreateBooking normalizes the email, verifies the referenced event exists,
// and persists the booking. The existence check runs on every creation so
// the data layer is the authority on referential integrity regardless of
// what callers validated. The confirmation email is best effort: a send
// failure is logged and never fails the booking.
func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		metrics.RecordBookingRejected(metrics.ReasonValidation)
		return nil, err
	}
	if strings.TrimSpace(eventID) == "" {
		metrics.RecordBookingRejected(metrics.ReasonValidation)
		return nil, fmt.Errorf("%w: event_id is required", domain.ErrValidation)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.RecordBookingRejected(metrics.ReasonMissingEvent)
			return nil, fmt.Errorf("%w: %q", domain.ErrEventNotFound, eventID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	booking := domain.NewBooking(event.ID, normalized, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	metrics.RecordBookingCreated()

	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventDate:  event.Date,
		EventTime:  event.Time,
		EventVenue: event.Venue,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		log.Printf("[BOOKING] confirmation email to %s failed: %v", booking.Email, err)
	}

	return booking, nil
}

func (s *bookingService) ListBookingsByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}
