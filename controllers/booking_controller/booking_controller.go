package booking_controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripguide/api/config"
	"github.com/tripguide/api/logger"
	"github.com/tripguide/api/middlewares/auth"
	"github.com/tripguide/api/models/booking_models"
	"github.com/tripguide/api/models/guide_models"
	"github.com/tripguide/api/models/shared_models"
	"github.com/tripguide/api/models/tour_models"
	"github.com/tripguide/api/models/user_models"
	"github.com/tripguide/api/utils/mail"
)

const maxSpecialRequestsLength = 500

// BookingController manages the booking lifecycle.
type BookingController struct {
	DB *pgxpool.Pool
}

// NewBookingController creates a new BookingController.
func NewBookingController(db *pgxpool.Pool) (*BookingController, error) {
	if db == nil {
		return nil, errors.New("database pool cannot be nil")
	}
	return &BookingController{DB: db}, nil
}

func serverError(c *gin.Context, err error) {
	logger.ErrorLogger.Errorf("Unexpected server error: %v", err)
	if config.IsDevelopment() {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

type createBookingRequest struct {
	BookingType       string                      `json:"bookingType" binding:"required"`
	TourID            string                      `json:"tourId"`
	GuideID           string                      `json:"guideId"`
	Destination       string                      `json:"destination" binding:"required"`
	StartDate         string                      `json:"startDate" binding:"required"`
	EndDate           string                      `json:"endDate" binding:"required"`
	NumberOfTravelers *booking_models.Travelers   `json:"numberOfTravelers"`
	TotalPrice        *float64                    `json:"totalPrice" binding:"required"`
	SpecialRequests   string                      `json:"specialRequests"`
	ContactInfo       *booking_models.ContactInfo `json:"contactInfo"`
}

// parseDate accepts full RFC 3339 timestamps as well as plain dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", raw)
}

// CreateBooking validates the request, resolves the referenced tour or
// guide, stamps defaults and persists a pending booking.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	logger.InfoLogger.Info("CreateBooking controller called")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.BookingType != shared_models.BookingTypeTour && req.BookingType != shared_models.BookingTypeGuide {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking type"})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid start date is required"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid end date is required"})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "End date must not be before start date"})
		return
	}

	if len(req.SpecialRequests) > maxSpecialRequestsLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Special requests cannot exceed 500 characters"})
		return
	}

	ctx := c.Request.Context()

	// The booking type decides which reference is authoritative; the other
	// is left unset regardless of what the client sent.
	var tourID, guideID *uuid.UUID
	if req.BookingType == shared_models.BookingTypeTour && req.TourID != "" {
		id, err := uuid.Parse(req.TourID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tour not found"})
			return
		}
		if _, err := tour_models.GetTourByID(ctx, bc.DB, id); err != nil {
			if errors.Is(err, tour_models.ErrTourNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Tour not found"})
				return
			}
			serverError(c, err)
			return
		}
		tourID = &id
	}
	if req.BookingType == shared_models.BookingTypeGuide && req.GuideID != "" {
		id, err := uuid.Parse(req.GuideID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Guide not found"})
			return
		}
		if _, err := guide_models.GetGuideByID(ctx, bc.DB, id); err != nil {
			if errors.Is(err, guide_models.ErrGuideNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Guide not found"})
				return
			}
			serverError(c, err)
			return
		}
		guideID = &id
	}

	travelers := booking_models.Travelers{Adults: 1, Children: 0}
	if req.NumberOfTravelers != nil {
		travelers = *req.NumberOfTravelers
	}

	contact := contactDefaults(req.ContactInfo, actor)

	booking, err := booking_models.NewBooking(actor.ID, req.BookingType, tourID, guideID,
		req.Destination, startDate, endDate, travelers, *req.TotalPrice, req.SpecialRequests, contact)
	if err != nil {
		serverError(c, err)
		return
	}

	created, err := booking_models.CreateBooking(ctx, bc.DB, booking)
	if err != nil {
		serverError(c, err)
		return
	}

	go func(b *booking_models.Booking, email, name string) {
		if err := mail.SendBookingConfirmation(email, name, b); err != nil {
			logger.ErrorLogger.Errorf("Failed to send booking confirmation for %s: %v", b.BookingReference, err)
		}
	}(created, contact.Email, contact.Name)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": created,
	})
}

// contactDefaults falls back to the acting user's details when the client
// omitted contact info entirely. A supplied object is taken as-is, blank
// fields included.
func contactDefaults(supplied *booking_models.ContactInfo, actor *user_models.User) booking_models.ContactInfo {
	if supplied != nil {
		return *supplied
	}
	return booking_models.ContactInfo{
		Name:  actor.Public().Name,
		Email: actor.Email,
		Phone: actor.Phone,
	}
}

// ListBookings returns the acting user's own bookings.
func (bc *BookingController) ListBookings(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	status := c.Query("status")
	sortBy := c.Query("sortBy")

	bookings, err := booking_models.GetBookingsByUser(c.Request.Context(), bc.DB, actor.ID, status, sortBy)
	if err != nil {
		serverError(c, err)
		return
	}
	if bookings == nil {
		bookings = []booking_models.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(bookings),
		"bookings": bookings,
	})
}

// GetBooking returns one booking, restricted to its owner or an admin.
func (bc *BookingController) GetBooking(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}

	booking, err := booking_models.GetBookingByID(c.Request.Context(), bc.DB, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		serverError(c, err)
		return
	}

	if booking.UserID != actor.ID && !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking transitions a booking to cancelled. Terminal states are
// rejected with distinct messages.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	logger.InfoLogger.Info("CancelBooking controller called")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Cancellation body is optional.
	_ = c.ShouldBindJSON(&req)

	booking, err := booking_models.CancelBooking(c.Request.Context(), bc.DB, bookingID, actor.ID, actor.IsAdmin(), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, booking_models.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		case errors.Is(err, booking_models.ErrBookingNotOwnedByUser):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		case errors.Is(err, booking_models.ErrBookingCompleted):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot cancel a completed booking"})
		case errors.Is(err, booking_models.ErrBookingAlreadyCancelled):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Booking is already cancelled"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled successfully",
		"booking": booking,
	})
}
