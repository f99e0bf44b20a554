package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Event modes.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Event represents a developer event (hackathon, meetup, conference).
// Date and Time are stored in their normalized string forms: date as
// YYYY-MM-DD, time as 12-hour "HH:MM AM/PM".
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventUpdate describes a partial update. Nil fields are unchanged.
// Normalization runs only for the fields that are set: a new title re-derives
// the slug, a new date or time is re-normalized, everything else is stored
// as given.
type EventUpdate struct {
	Title *string
	// Slug is set by the service whenever Title is set; values supplied by
	// callers are overwritten. It never changes independently of the title.
	Slug        *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Agenda      *[]string
	Organizer   *string
	Tags        *[]string
}

// Empty reports whether the update carries no fields.
func (u EventUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Overview == nil &&
		u.Image == nil && u.Venue == nil && u.Location == nil &&
		u.Date == nil && u.Time == nil && u.Mode == nil &&
		u.Audience == nil && u.Agenda == nil && u.Organizer == nil &&
		u.Tags == nil
}

var (
	// slugStrip removes everything except word characters, whitespace, and
	// hyphens; slugSeparator then folds whitespace and hyphen runs into a
	// single hyphen. Applied to its own output the pipeline is a no-op,
	// which keeps DeriveSlug idempotent.
	slugStrip     = regexp.MustCompile(`[^\w\s-]`)
	slugSeparator = regexp.MustCompile(`[\s-]+`)

	// slugFormat is the canonical shape of a stored slug. Checked at the
	// API boundary before any store lookup.
	slugFormat = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// timeFormat matches 12-hour clock times with an optional space before
	// the meridiem, case-insensitively.
	timeFormat = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):([0-5][0-9])\s?(am|pm)$`)
)

// dateLayouts are the accepted input forms for event dates, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// DeriveSlug returns the URL-safe identity derived from an event title:
// lower-cased, trimmed, special characters stripped, whitespace runs
// collapsed into single hyphens. Pure function of the title.
func DeriveSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSeparator.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidSlug reports whether s has the canonical slug shape.
func ValidSlug(s string) bool {
	return slugFormat.MatchString(s)
}

// NormalizeDate parses raw as a calendar date and returns it as YYYY-MM-DD.
// Unparseable input returns ErrValidation.
func NormalizeDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a valid date", ErrValidation, raw)
}

// NormalizeTime validates raw against the 12-hour clock pattern and returns
// it trimmed, upper-cased, with a single space before AM/PM
// ("9:00am" becomes "9:00 AM"). Anything else returns ErrValidation.
func NormalizeTime(raw string) (string, error) {
	m := timeFormat.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", fmt.Errorf("%w: %q is not a valid time, expected HH:MM AM/PM", ErrValidation, raw)
	}
	return fmt.Sprintf("%s:%s %s", m[1], m[2], strings.ToUpper(m[3])), nil
}

// Validate checks structural validity of the event: required fields present,
// mode enumerated, agenda and tags non-empty. Returns error messages; nil
// means valid. Date and time are assumed already normalized.
func (e *Event) Validate() []string {
	var errs []string
	required := []struct {
		name, value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"date", e.Date},
		{"time", e.Time},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, f.name+" is required")
		}
	}
	switch e.Mode {
	case ModeOnline, ModeOffline, ModeHybrid:
	default:
		errs = append(errs, "mode must be one of online, offline, hybrid")
	}
	if len(e.Agenda) == 0 {
		errs = append(errs, "agenda must have at least one item")
	}
	if len(e.Tags) == 0 {
		errs = append(errs, "tags must have at least one item")
	}
	return errs
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
}

// EventService defines event operations exposed to the delivery layer.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, slug string, upd EventUpdate) (*Event, error)
}
