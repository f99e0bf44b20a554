package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devevent/internal/domain"
	"devevent/internal/metrics"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// CreateEvent normalizes date and time, validates the record, derives the
// slug from the title, and persists. The store's unique index on slug is the
// authority on uniqueness; a duplicate surfaces as domain.ErrSlugTaken.
func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Date != "" {
		date, err := domain.NormalizeDate(event.Date)
		if err != nil {
			return err
		}
		event.Date = date
	}
	if event.Time != "" {
		t, err := domain.NormalizeTime(event.Time)
		if err != nil {
			return err
		}
		event.Time = t
	}

	if errs := event.Validate(); len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(errs, "; "))
	}

	event.Slug = domain.DeriveSlug(event.Title)
	if event.Slug == "" {
		return fmt.Errorf("%w: title must contain at least one word character", domain.ErrValidation)
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return err
		}
		return fmt.Errorf("create event: %w", err)
	}
	metrics.RecordEventCreated()
	return nil
}

// GetEventBySlug rejects malformed slugs before any store access.
func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidSlug(slug) {
		return nil, fmt.Errorf("%w: %q is not a valid slug", domain.ErrValidation, slug)
	}
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// UpdateEvent applies a partial update. Normalization runs only for fields
// the update carries: a changed title re-derives the slug, a supplied date or
// time is re-normalized. Fields the update omits are never touched, so
// already-normalized values cannot be corrupted by unrelated edits.
func (s *eventService) UpdateEvent(ctx context.Context, slug string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidSlug(slug) {
		return nil, fmt.Errorf("%w: %q is not a valid slug", domain.ErrValidation, slug)
	}

	if err := normalizeUpdate(&upd); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}

	updated, err := s.eventRepo.Update(ctx, event.ID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

// normalizeUpdate validates and normalizes the fields an update carries and
// derives the slug when the title changes. Caller-supplied slugs are ignored.
func normalizeUpdate(upd *domain.EventUpdate) error {
	upd.Slug = nil
	if upd.Title != nil {
		derived := domain.DeriveSlug(*upd.Title)
		if derived == "" {
			return fmt.Errorf("%w: title must contain at least one word character", domain.ErrValidation)
		}
		upd.Slug = &derived
	}
	if upd.Date != nil {
		date, err := domain.NormalizeDate(*upd.Date)
		if err != nil {
			return err
		}
		upd.Date = &date
	}
	if upd.Time != nil {
		t, err := domain.NormalizeTime(*upd.Time)
		if err != nil {
			return err
		}
		upd.Time = &t
	}
	if upd.Mode != nil {
		switch *upd.Mode {
		case domain.ModeOnline, domain.ModeOffline, domain.ModeHybrid:
		default:
			return fmt.Errorf("%w: mode must be one of online, offline, hybrid", domain.ErrValidation)
		}
	}
	nonEmpty := []struct {
		name  string
		value *string
	}{
		{"description", upd.Description},
		{"overview", upd.Overview},
		{"image", upd.Image},
		{"venue", upd.Venue},
		{"location", upd.Location},
		{"audience", upd.Audience},
		{"organizer", upd.Organizer},
	}
	for _, f := range nonEmpty {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrValidation, f.name)
		}
	}
	if upd.Agenda != nil && len(*upd.Agenda) == 0 {
		return fmt.Errorf("%w: agenda must have at least one item", domain.ErrValidation)
	}
	if upd.Tags != nil && len(*upd.Tags) == 0 {
		return fmt.Errorf("%w: tags must have at least one item", domain.ErrValidation)
	}
	return nil
}
