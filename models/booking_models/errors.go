package booking_models

import "errors"

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingNotOwnedByUser   = errors.New("booking does not belong to this user")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrBookingCompleted        = errors.New("cannot cancel a completed booking")
	ErrInvalidTransition       = errors.New("invalid booking status transition")
)
