package email

import (
	"strings"
	"testing"

	"devevent/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_BookingConfirmation(t *testing.T) {
	r := NewTemplateRenderer()

	data := &domain.BookingConfirmationEmailData{
		Email:      "user@example.com",
		EventTitle: "Re Act Conf 2025",
		EventDate:  "2025-01-05",
		EventTime:  "9:00 AM",
		EventVenue: "City Hall",
	}

	subject, html, text, err := r.Render("booking_confirmation", data)
	require.NoError(t, err)

	require.Equal(t, "Your seat for Re Act Conf 2025 is confirmed", subject)
	require.Contains(t, html, "Re Act Conf 2025")
	require.Contains(t, html, "City Hall")
	require.Contains(t, text, "2025-01-05")
	require.Contains(t, text, "9:00 AM")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()

	_, _, _, err := r.Render("does_not_exist", nil)
	require.Error(t, err)
}

func TestTemplateRenderer_EscapesHTML(t *testing.T) {
	r := NewTemplateRenderer()

	data := &domain.BookingConfirmationEmailData{
		Email:      "user@example.com",
		EventTitle: "<script>alert(1)</script>",
	}

	_, html, _, err := r.Render("booking_confirmation", data)
	require.NoError(t, err)
	require.False(t, strings.Contains(html, "<script>"))
}
