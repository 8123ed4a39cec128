package mail

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/tripguide/api/logger"
	"github.com/tripguide/api/models/booking_models"
)

func smtpConfigured() bool {
	return os.Getenv("SMTP_HOST") != "" && os.Getenv("SMTP_USER") != ""
}

func dialer() *gomail.Dialer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)
}

// SendBookingConfirmation emails the booking reference and trip summary to
// the traveler. Best effort: callers run it in a goroutine and a missing
// SMTP configuration just skips the send.
func SendBookingConfirmation(toEmail, toName string, booking *booking_models.Booking) error {
	if !smtpConfigured() {
		logger.InfoLogger.Info("SMTP not configured, skipping booking confirmation email")
		return nil
	}

	d := dialer()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	body := fmt.Sprintf(
		"Hi %s,<br><br>Your booking <b>%s</b> for %s (%s – %s) has been received and is pending confirmation.<br>"+
			"Total price: %.2f<br><br>Thank you for booking with Trip Guide!",
		toName,
		booking.BookingReference,
		booking.Destination,
		booking.StartDate.Format("02 Jan 2006"),
		booking.EndDate.Format("02 Jan 2006"),
		booking.TotalPrice,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Booking %s received", booking.BookingReference))
	m.SetBody("text/html", body)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking confirmation to %s: %w", toEmail, err)
	}

	logger.InfoLogger.Infof("Booking confirmation sent to %s for %s", toEmail, booking.BookingReference)
	return nil
}
