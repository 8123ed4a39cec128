package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tripguide/api/models/booking_models"
)

func TestDialerPortDefault(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer")

	t.Run("UnsetFallsBackTo587", func(t *testing.T) {
		t.Setenv("SMTP_PORT", "")
		assert.Equal(t, 587, dialer().Port)
	})

	t.Run("MalformedFallsBackTo587", func(t *testing.T) {
		t.Setenv("SMTP_PORT", "not-a-port")
		assert.Equal(t, 587, dialer().Port)
	})

	t.Run("ExplicitPort", func(t *testing.T) {
		t.Setenv("SMTP_PORT", "2525")
		assert.Equal(t, 2525, dialer().Port)
	})
}

func TestSendSkipsWithoutSMTPConfig(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_USER", "")

	booking := &booking_models.Booking{
		BookingReference: "TGTEST123",
		Destination:      "Kerala",
		StartDate:        time.Now(),
		EndDate:          time.Now().AddDate(0, 0, 5),
	}

	err := SendBookingConfirmation("asha@example.com", "Asha Verma", booking)
	assert.NoError(t, err)
}
