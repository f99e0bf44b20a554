package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	createFn        func(ctx context.Context, booking *domain.Booking) error
	listByEventIDFn func(ctx context.Context, eventID string) ([]*domain.Booking, error)
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return f.createFn(ctx, booking)
}

func (f *fakeBookingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	return f.listByEventIDFn(ctx, eventID)
}

type fakeEmailService struct {
	sendFn func(ctx context.Context, data *domain.BookingConfirmationEmailData) error
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.sendFn == nil {
		return nil
	}
	return f.sendFn(ctx, data)
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{
		ID:    "ev-1",
		Title: "Re Act Conf 2025",
		Date:  "2025-01-05",
		Time:  "9:00 AM",
		Venue: "City Hall",
	}

	t.Run("normalizes email and persists", func(t *testing.T) {
		var stored *domain.Booking
		bookingRepo := &fakeBookingRepo{
			createFn: func(ctx context.Context, booking *domain.Booking) error {
				booking.ID = "bk-1"
				stored = booking
				return nil
			},
		}
		eventRepo := &fakeEventRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Event, error) {
				require.Equal(t, "ev-1", id)
				return event, nil
			},
		}
		svc := NewBookingService(bookingRepo, eventRepo, &fakeEmailService{}, time.Second)

		got, err := svc.CreateBooking(ctx, "ev-1", "  USER@Example.com ")
		require.NoError(t, err)
		require.Equal(t, "user@example.com", got.Email)
		require.Equal(t, "ev-1", got.EventID)
		require.Equal(t, "bk-1", got.ID)
		require.Same(t, got, stored)
	})

	t.Run("invalid email rejected before store access", func(t *testing.T) {
		bookingRepo := &fakeBookingRepo{
			createFn: func(ctx context.Context, booking *domain.Booking) error {
				t.Fatal("booking repo should not be called")
				return nil
			},
		}
		eventRepo := &fakeEventRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Event, error) {
				t.Fatal("event repo should not be called")
				return nil, nil
			},
		}
		svc := NewBookingService(bookingRepo, eventRepo, &fakeEmailService{}, time.Second)

		for _, email := range []string{"", "not-an-email", "missing@tld"} {
			_, err := svc.CreateBooking(ctx, "ev-1", email)
			require.True(t, errors.Is(err, domain.ErrValidation), "email %q", email)
		}
	})

	t.Run("missing event names the id", func(t *testing.T) {
		bookingRepo := &fakeBookingRepo{
			createFn: func(ctx context.Context, booking *domain.Booking) error {
				t.Fatal("booking repo should not be called")
				return nil
			},
		}
		eventRepo := &fakeEventRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Event, error) {
				return nil, domain.ErrNotFound
			},
		}
		svc := NewBookingService(bookingRepo, eventRepo, &fakeEmailService{}, time.Second)

		_, err := svc.CreateBooking(ctx, "ev-ghost", "user@example.com")
		require.True(t, errors.Is(err, domain.ErrEventNotFound))
		require.Contains(t, err.Error(), "ev-ghost")
	})

	t.Run("email failure does not fail the booking", func(t *testing.T) {
		bookingRepo := &fakeBookingRepo{
			createFn: func(ctx context.Context, booking *domain.Booking) error {
				booking.ID = "bk-1"
				return nil
			},
		}
		eventRepo := &fakeEventRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Event, error) {
				return event, nil
			},
		}
		mail := &fakeEmailService{
			sendFn: func(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
				return errors.New("ses unavailable")
			},
		}
		svc := NewBookingService(bookingRepo, eventRepo, mail, time.Second)

		got, err := svc.CreateBooking(ctx, "ev-1", "user@example.com")
		require.NoError(t, err)
		require.Equal(t, "bk-1", got.ID)
	})

	t.Run("confirmation carries event details", func(t *testing.T) {
		var sent *domain.BookingConfirmationEmailData
		bookingRepo := &fakeBookingRepo{
			createFn: func(ctx context.Context, booking *domain.Booking) error { return nil },
		}
		eventRepo := &fakeEventRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Event, error) {
				return event, nil
			},
		}
		mail := &fakeEmailService{
			sendFn: func(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
				sent = data
				return nil
			},
		}
		svc := NewBookingService(bookingRepo, eventRepo, mail, time.Second)

		_, err := svc.CreateBooking(ctx, "ev-1", "user@example.com")
		require.NoError(t, err)
		require.NotNil(t, sent)
		require.Equal(t, "Re Act Conf 2025", sent.EventTitle)
		require.Equal(t, "2025-01-05", sent.EventDate)
		require.Equal(t, "9:00 AM", sent.EventTime)
		require.Equal(t, "City Hall", sent.EventVenue)
		require.Equal(t, "user@example.com", sent.Email)
	})
}

func TestBookingService_ListBookingsByEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		want := []*domain.Booking{{ID: "bk-1", EventID: "ev-1", Email: "user@example.com"}}
		bookingRepo := &fakeBookingRepo{
			listByEventIDFn: func(ctx context.Context, eventID string) ([]*domain.Booking, error) {
				require.Equal(t, "ev-1", eventID)
				return want, nil
			},
		}
		svc := NewBookingService(bookingRepo, &fakeEventRepo{}, &fakeEmailService{}, time.Second)

		got, err := svc.ListBookingsByEvent(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		bookingRepo := &fakeBookingRepo{
			listByEventIDFn: func(ctx context.Context, eventID string) ([]*domain.Booking, error) {
				return nil, nil
			},
		}
		svc := NewBookingService(bookingRepo, &fakeEventRepo{}, &fakeEmailService{}, time.Second)

		got, err := svc.ListBookingsByEvent(ctx, "ev-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}
