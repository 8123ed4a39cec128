package booking_models

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripguide/api/logger"
	"github.com/tripguide/api/models/shared_models"
)

// Travelers is the party size breakdown.
type Travelers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// ContactInfo is the contact snapshot captured at booking time. It is
// deliberately decoupled from the user record so later profile edits do not
// rewrite historical bookings.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PaymentDetails is the optional payment snapshot.
type PaymentDetails struct {
	TransactionID string     `json:"transactionId,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

// UserRef, TourRef and GuideRef are the shallow projections attached to
// booking responses for display.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

type TourRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	CoverImage  string    `json:"coverImage"`
	Price       float64   `json:"price"`
}

type GuideRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Photo       string    `json:"photo"`
	Location    string    `json:"location"`
	PricePerDay float64   `json:"pricePerDay"`
}

// Booking is a user's reservation of a tour or a guide.
type Booking struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"-"`
	TourID             *uuid.UUID      `json:"-"`
	GuideID            *uuid.UUID      `json:"-"`
	User               UserRef         `json:"user"`
	Tour               *TourRef        `json:"tour,omitempty"`
	Guide              *GuideRef       `json:"guide,omitempty"`
	BookingType        string          `json:"bookingType"`
	Destination        string          `json:"destination"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
	NumberOfTravelers  Travelers       `json:"numberOfTravelers"`
	TotalPrice         float64         `json:"totalPrice"`
	PaymentStatus      string          `json:"paymentStatus"`
	BookingStatus      string          `json:"bookingStatus"`
	SpecialRequests    string          `json:"specialRequests,omitempty"`
	ContactInfo        ContactInfo     `json:"contactInfo"`
	PaymentDetails     *PaymentDetails `json:"paymentDetails,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	BookingReference   string          `json:"bookingReference"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// DurationDays returns the trip length in whole days, rounded up.
func (b *Booking) DurationDays() int {
	d := b.EndDate.Sub(b.StartDate)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateBookingReference builds the human-readable booking reference:
// "TG" + millisecond timestamp in base36 + 3 random base36 characters.
func GenerateBookingReference() (string, error) {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate reference suffix: %w", err)
	}
	for i := range suffix {
		suffix[i] = referenceAlphabet[int(suffix[i])%len(referenceAlphabet)]
	}

	return "TG" + ts + string(suffix), nil
}

// CanTransition reports whether the booking status state machine permits
// moving from one status to another. cancelled and completed are terminal.
func CanTransition(from, to string) bool {
	switch from {
	case shared_models.BookingStatusPending:
		return to == shared_models.BookingStatusConfirmed || to == shared_models.BookingStatusCancelled
	case shared_models.BookingStatusConfirmed:
		return to == shared_models.BookingStatusCancelled || to == shared_models.BookingStatusCompleted
	default:
		return false
	}
}

// NewBooking assembles a booking in its initial state. The reference is
// generated here, exactly once; it is never regenerated afterwards.
func NewBooking(userID uuid.UUID, bookingType string, tourID, guideID *uuid.UUID, destination string, startDate, endDate time.Time, travelers Travelers, totalPrice float64, specialRequests string, contact ContactInfo) (*Booking, error) {
	id, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}

	reference, err := GenerateBookingReference()
	if err != nil {
		return nil, err
	}

	if travelers.Adults < 1 {
		travelers.Adults = 1
	}
	if travelers.Children < 0 {
		travelers.Children = 0
	}

	now := time.Now()
	return &Booking{
		ID:                id,
		UserID:            userID,
		TourID:            tourID,
		GuideID:           guideID,
		BookingType:       bookingType,
		Destination:       destination,
		StartDate:         startDate,
		EndDate:           endDate,
		NumberOfTravelers: travelers,
		TotalPrice:        totalPrice,
		PaymentStatus:     shared_models.PaymentStatusPending,
		BookingStatus:     shared_models.BookingStatusPending,
		SpecialRequests:   specialRequests,
		ContactInfo:       contact,
		BookingReference:  reference,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

const bookingColumns = `b.id, b.user_id, b.tour_id, b.guide_id, b.booking_type, b.destination,
	b.start_date, b.end_date, b.adults, b.children, b.total_price, b.payment_status,
	b.booking_status, b.special_requests, b.contact_name, b.contact_email, b.contact_phone,
	b.payment_details, b.cancellation_reason, b.cancelled_at, b.booking_reference,
	b.created_at, b.updated_at`

const bookingJoins = `
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	LEFT JOIN tours t ON t.id = b.tour_id
	LEFT JOIN guides g ON g.id = b.guide_id`

const bookingRefColumns = `,
	u.first_name, u.last_name, u.email, u.phone,
	t.id, t.name, t.destination, t.cover_image, t.price,
	g.id, g.name, g.photo, g.location, g.price_per_day`

func scanBooking(row pgx.Row) (*Booking, error) {
	b := &Booking{}
	var specialRequests *string
	var paymentDetailsRaw []byte
	var firstName, lastName, userEmail, userPhone string
	var tourID *uuid.UUID
	var tourName, tourDestination, tourCover *string
	var tourPrice *float64
	var guideID *uuid.UUID
	var guideName, guidePhoto, guideLocation *string
	var guidePrice *float64

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.TourID,
		&b.GuideID,
		&b.BookingType,
		&b.Destination,
		&b.StartDate,
		&b.EndDate,
		&b.NumberOfTravelers.Adults,
		&b.NumberOfTravelers.Children,
		&b.TotalPrice,
		&b.PaymentStatus,
		&b.BookingStatus,
		&specialRequests,
		&b.ContactInfo.Name,
		&b.ContactInfo.Email,
		&b.ContactInfo.Phone,
		&paymentDetailsRaw,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.BookingReference,
		&b.CreatedAt,
		&b.UpdatedAt,
		&firstName,
		&lastName,
		&userEmail,
		&userPhone,
		&tourID,
		&tourName,
		&tourDestination,
		&tourCover,
		&tourPrice,
		&guideID,
		&guideName,
		&guidePhoto,
		&guideLocation,
		&guidePrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}

	if specialRequests != nil {
		b.SpecialRequests = *specialRequests
	}
	if len(paymentDetailsRaw) > 0 && string(paymentDetailsRaw) != "null" {
		details := &PaymentDetails{}
		if err := json.Unmarshal(paymentDetailsRaw, details); err != nil {
			return nil, fmt.Errorf("failed to decode payment details: %w", err)
		}
		b.PaymentDetails = details
	}
	b.User = UserRef{
		ID:    b.UserID,
		Name:  strings.TrimSpace(firstName + " " + lastName),
		Email: userEmail,
		Phone: userPhone,
	}
	if tourID != nil {
		b.Tour = &TourRef{
			ID:          *tourID,
			Name:        deref(tourName),
			Destination: deref(tourDestination),
			CoverImage:  deref(tourCover),
			Price:       derefF(tourPrice),
		}
	}
	if guideID != nil {
		b.Guide = &GuideRef{
			ID:          *guideID,
			Name:        deref(guideName),
			Photo:       deref(guidePhoto),
			Location:    deref(guideLocation),
			PricePerDay: derefF(guidePrice),
		}
	}

	return b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefF(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// CreateBooking inserts a new booking record and returns it populated with
// its referenced tour/guide for display.
func CreateBooking(ctx context.Context, db *pgxpool.Pool, booking *Booking) (*Booking, error) {
	logger.InfoLogger.Infof("Attempting to create booking %s (reference %s)", booking.ID, booking.BookingReference)

	var specialRequests *string
	if booking.SpecialRequests != "" {
		specialRequests = &booking.SpecialRequests
	}

	query := `
		INSERT INTO bookings (
			id, user_id, tour_id, guide_id, booking_type, destination,
			start_date, end_date, adults, children, total_price,
			payment_status, booking_status, special_requests,
			contact_name, contact_email, contact_phone,
			booking_reference, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20
		)`

	_, err := db.Exec(ctx, query,
		booking.ID, booking.UserID, booking.TourID, booking.GuideID,
		booking.BookingType, booking.Destination,
		booking.StartDate, booking.EndDate,
		booking.NumberOfTravelers.Adults, booking.NumberOfTravelers.Children,
		booking.TotalPrice, booking.PaymentStatus, booking.BookingStatus,
		specialRequests,
		booking.ContactInfo.Name, booking.ContactInfo.Email, booking.ContactInfo.Phone,
		booking.BookingReference, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking %s: %v", booking.ID, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s created successfully", booking.ID)
	return GetBookingByID(ctx, db, booking.ID)
}

// GetBookingByID fetches a booking populated with its user, tour and guide.
func GetBookingByID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingColumns + bookingRefColumns + bookingJoins + ` WHERE b.id = $1`
	return scanBooking(db.QueryRow(ctx, query, bookingID))
}

// GetBookingsByUser retrieves a user's bookings, optionally narrowed by
// status. Default order is newest first; sortBy "date" orders by trip start.
func GetBookingsByUser(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, status, sortBy string) ([]Booking, error) {
	logger.InfoLogger.Infof("Fetching bookings for user %s with status filter: %q", userID, status)

	conditions := []string{"b.user_id = $1"}
	args := []any{userID}
	if status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("b.booking_status = $%d", len(args)))
	}

	order := "b.created_at DESC"
	if sortBy == "date" {
		order = "b.start_date ASC"
	}

	query := fmt.Sprintf(`SELECT %s%s%s WHERE %s ORDER BY %s`,
		bookingColumns, bookingRefColumns, bookingJoins,
		strings.Join(conditions, " AND "), order)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking rows: %w", err)
	}

	return bookings, nil
}

// CancelBooking transitions a booking to cancelled on behalf of the actor.
// Terminal states are rejected with distinct errors; the cancellation reason
// and timestamp are recorded together, exactly once.
func CancelBooking(ctx context.Context, db *pgxpool.Pool, bookingID, actorID uuid.UUID, actorIsAdmin bool, reason string) (*Booking, error) {
	booking, err := GetBookingByID(ctx, db, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != actorID && !actorIsAdmin {
		return nil, ErrBookingNotOwnedByUser
	}

	switch booking.BookingStatus {
	case shared_models.BookingStatusCompleted:
		return nil, ErrBookingCompleted
	case shared_models.BookingStatusCancelled:
		return nil, ErrBookingAlreadyCancelled
	}

	if reason == "" {
		reason = "User requested cancellation"
	}

	now := time.Now()
	cmdTag, err := db.Exec(ctx, `
		UPDATE bookings
		SET booking_status = $2, cancellation_reason = $3, cancelled_at = $4, updated_at = $4
		WHERE id = $1 AND booking_status IN ($5, $6)`,
		bookingID, shared_models.BookingStatusCancelled, reason, now,
		shared_models.BookingStatusPending, shared_models.BookingStatusConfirmed,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to cancel booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Lost a race with a concurrent transition; re-read to report the
		// terminal state accurately.
		current, readErr := GetBookingByID(ctx, db, bookingID)
		if readErr != nil {
			return nil, readErr
		}
		if current.BookingStatus == shared_models.BookingStatusCompleted {
			return nil, ErrBookingCompleted
		}
		return nil, ErrBookingAlreadyCancelled
	}

	logger.InfoLogger.Infof("Booking %s cancelled by %s", bookingID, actorID)
	return GetBookingByID(ctx, db, bookingID)
}

// UpdateBookingStatus moves a booking through the lifecycle state machine.
// Used by admin tooling for the confirm and complete transitions.
func UpdateBookingStatus(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, status string) (*Booking, error) {
	booking, err := GetBookingByID(ctx, db, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(booking.BookingStatus, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.BookingStatus, status)
	}

	cmdTag, err := db.Exec(ctx, `
		UPDATE bookings
		SET booking_status = $2, updated_at = now()
		WHERE id = $1 AND booking_status = $3`,
		bookingID, status, booking.BookingStatus,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", bookingID, err)
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: booking %s changed concurrently", ErrInvalidTransition, bookingID)
	}

	logger.InfoLogger.Infof("Booking %s status updated to %s", bookingID, status)
	return GetBookingByID(ctx, db, bookingID)
}
