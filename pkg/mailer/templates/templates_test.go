package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleData() EmailData {
	return EmailData{
		Name:        "Alice",
		Email:       "alice@example.com",
		CompanyName: "Talent Trade",
		ActionURL:   "https://app.example.com/confirm-email?token=abc123",
		ExpiresAt:   time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		IP:          "203.0.113.9",
		Location:    "Bogota, Colombia",
		UserAgent:   "Mozilla/5.0",
	}
}

func TestRenderConfirmRegistration(t *testing.T) {
	html, text, err := Render(ConfirmRegistration, sampleData())
	require.NoError(t, err)
	require.Contains(t, html, "Alice")
	require.Contains(t, html, "https://app.example.com/confirm-email?token=abc123")
	require.Contains(t, text, "https://app.example.com/confirm-email?token=abc123")
}

func TestRenderResetPassword(t *testing.T) {
	html, text, err := Render(ResetPassword, sampleData())
	require.NoError(t, err)
	require.Contains(t, html, "https://app.example.com/confirm-email?token=abc123")
	require.Contains(t, text, "Alice")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("nonexistent", sampleData())
	require.Error(t, err)
}

func TestSubject(t *testing.T) {
	require.Equal(t, "Confirm your email address", Subject(ConfirmRegistration))
	require.Equal(t, "Reset your password", Subject(ResetPassword))
	require.Equal(t, "Notification", Subject("anything-else"))
}

func TestFormatGeo(t *testing.T) {
	require.Equal(t, "Bogota, Cundinamarca, Colombia", FormatGeo(Geo{City: "Bogota", Region: "Cundinamarca", Country: "Colombia"}))
	require.Equal(t, "Colombia", FormatGeo(Geo{Country: "Colombia"}))
	require.Equal(t, "", FormatGeo(Geo{}))
	require.False(t, strings.HasPrefix(FormatGeo(Geo{Region: "X"}), ","))
}
