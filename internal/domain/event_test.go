package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Re Act Conf 2025", "re-act-conf-2025"},
		{"special chars stripped", "Go! Meetup: Berlin (2025)", "go-meetup-berlin-2025"},
		{"surrounding whitespace", "  Hack Night  ", "hack-night"},
		{"internal whitespace runs", "Dev\t  Summit", "dev-summit"},
		{"repeated hyphens collapsed", "foo -- bar", "foo-bar"},
		{"leading trailing hyphens trimmed", "- hello -", "hello"},
		{"already a slug", "re-act-conf-2025", "re-act-conf-2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSlug(tt.title)
			assert.Equal(t, tt.want, got)
			// Feeding a derived slug back in must be a no-op.
			assert.Equal(t, got, DeriveSlug(got))
		})
	}
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("re-act-conf-2025"))
	assert.True(t, ValidSlug("hackathon"))
	assert.False(t, ValidSlug("Invalid Slug!"))
	assert.False(t, ValidSlug("-leading"))
	assert.False(t, ValidSlug("trailing-"))
	assert.False(t, ValidSlug("double--hyphen"))
	assert.False(t, ValidSlug(""))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"iso", "2025-01-05", "2025-01-05", false},
		{"long form", "January 5, 2025", "2025-01-05", false},
		{"short form", "Jan 5, 2025", "2025-01-05", false},
		{"slash form", "2025/01/05", "2025-01-05", false},
		{"surrounding whitespace", " 2025-01-05 ", "2025-01-05", false},
		{"impossible date", "2025-13-40", "", true},
		{"garbage", "not a date", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"lowercase no space", "9:00am", "9:00 AM", false},
		{"uppercase with space", "10:30 PM", "10:30 PM", false},
		{"mixed case", "12:15pM", "12:15 PM", false},
		{"leading zero kept", "09:00 am", "09:00 AM", false},
		{"surrounding whitespace", " 9:00 AM ", "9:00 AM", false},
		{"24 hour clock", "25:00", "", true},
		{"hour thirteen", "13:00 PM", "", true},
		{"bad minutes", "9:60 AM", "", true},
		{"no meridiem", "9:00", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTime(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func validEvent() *Event {
	return &Event{
		Title:       "Re Act Conf 2025",
		Description: "A conference about building UIs",
		Overview:    "Talks and workshops",
		Image:       "/images/react.png",
		Venue:       "City Hall",
		Location:    "Berlin, Germany",
		Date:        "2025-01-05",
		Time:        "9:00 AM",
		Mode:        ModeHybrid,
		Audience:    "Frontend developers",
		Agenda:      []string{"Keynote", "Workshops"},
		Organizer:   "DevEvent",
		Tags:        []string{"react", "frontend"},
	}
}

func TestEventValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, validEvent().Validate())
	})

	t.Run("missing required fields", func(t *testing.T) {
		e := validEvent()
		e.Title = ""
		e.Venue = "   "
		errs := e.Validate()
		assert.Contains(t, errs, "title is required")
		assert.Contains(t, errs, "venue is required")
	})

	t.Run("bad mode", func(t *testing.T) {
		e := validEvent()
		e.Mode = "virtual"
		assert.Contains(t, e.Validate(), "mode must be one of online, offline, hybrid")
	})

	t.Run("empty agenda and tags", func(t *testing.T) {
		e := validEvent()
		e.Agenda = nil
		e.Tags = []string{}
		errs := e.Validate()
		assert.Contains(t, errs, "agenda must have at least one item")
		assert.Contains(t, errs, "tags must have at least one item")
	})
}

func TestEventUpdateEmpty(t *testing.T) {
	assert.True(t, EventUpdate{}.Empty())
	title := "New Title"
	assert.False(t, EventUpdate{Title: &title}.Empty())
	tags := []string{"go"}
	assert.False(t, EventUpdate{Tags: &tags}.Empty())
}
