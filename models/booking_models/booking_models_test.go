package booking_models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripguide/api/models/shared_models"
)

func TestGenerateBookingReference(t *testing.T) {
	ref, err := GenerateBookingReference()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "TG"), "reference should start with TG: %s", ref)
	assert.Equal(t, ref, strings.ToUpper(ref), "reference should be upper case: %s", ref)
	assert.GreaterOrEqual(t, len(ref), 10)

	for _, r := range ref[2:] {
		assert.Contains(t, "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", string(r))
	}

	t.Run("FormatStableAcrossCalls", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			ref, err := GenerateBookingReference()
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(ref, "TG"))
			assert.Equal(t, ref, strings.ToUpper(ref))
		}
	})
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{shared_models.BookingStatusPending, shared_models.BookingStatusConfirmed, true},
		{shared_models.BookingStatusPending, shared_models.BookingStatusCancelled, true},
		{shared_models.BookingStatusPending, shared_models.BookingStatusCompleted, false},
		{shared_models.BookingStatusConfirmed, shared_models.BookingStatusCompleted, true},
		{shared_models.BookingStatusConfirmed, shared_models.BookingStatusCancelled, true},
		{shared_models.BookingStatusConfirmed, shared_models.BookingStatusPending, false},
		{shared_models.BookingStatusCancelled, shared_models.BookingStatusPending, false},
		{shared_models.BookingStatusCancelled, shared_models.BookingStatusConfirmed, false},
		{shared_models.BookingStatusCompleted, shared_models.BookingStatusCancelled, false},
		{shared_models.BookingStatusCompleted, shared_models.BookingStatusConfirmed, false},
		{"bogus", shared_models.BookingStatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestNewBooking(t *testing.T) {
	userID := uuid.New()
	tourID := uuid.New()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)

	contact := ContactInfo{Name: "Asha Verma", Email: "asha@example.com", Phone: "+91 99999 11111"}

	booking, err := NewBooking(userID, shared_models.BookingTypeTour, &tourID, nil,
		"Delhi, Agra, Jaipur", start, end, Travelers{Adults: 2, Children: 1},
		25000, "Vegetarian meals", contact)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.Equal(t, userID, booking.UserID)
	require.NotNil(t, booking.TourID)
	assert.Equal(t, tourID, *booking.TourID)
	assert.Nil(t, booking.GuideID)
	assert.Equal(t, shared_models.BookingStatusPending, booking.BookingStatus)
	assert.Equal(t, shared_models.PaymentStatusPending, booking.PaymentStatus)
	assert.Equal(t, 2, booking.NumberOfTravelers.Adults)
	assert.Equal(t, 1, booking.NumberOfTravelers.Children)
	assert.Equal(t, contact, booking.ContactInfo)
	assert.True(t, strings.HasPrefix(booking.BookingReference, "TG"))

	t.Run("TravelerDefaults", func(t *testing.T) {
		b, err := NewBooking(userID, shared_models.BookingTypeGuide, nil, nil,
			"Kerala", start, end, Travelers{Adults: 0, Children: -2}, 5000, "", contact)
		require.NoError(t, err)
		assert.Equal(t, 1, b.NumberOfTravelers.Adults)
		assert.Equal(t, 0, b.NumberOfTravelers.Children)
	})

	t.Run("ReferenceGeneratedOnce", func(t *testing.T) {
		b, err := NewBooking(userID, shared_models.BookingTypeTour, &tourID, nil,
			"Goa", start, end, Travelers{Adults: 1}, 12000, "", contact)
		require.NoError(t, err)

		ref := b.BookingReference
		assert.Equal(t, ref, b.BookingReference)
		assert.NotEmpty(t, ref)
	})
}

func TestDurationDays(t *testing.T) {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"FiveNights", start.AddDate(0, 0, 5), 5},
		{"SameDay", start, 0},
		{"PartialDayRoundsUp", start.Add(36 * time.Hour), 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Booking{StartDate: start, EndDate: tc.end}
			assert.Equal(t, tc.want, b.DurationDays())
		})
	}
}
