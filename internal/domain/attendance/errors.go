package attendance

import "errors"

var (
	ErrAlreadyCompleted   = errors.New("already marked attendance today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidKioskCode   = errors.New("kiosk code is missing or expired")
	ErrKioskDisabled      = errors.New("kiosk code verification is not configured")

	// ErrInvalidDuration is a data-integrity error: a stored record whose
	// check-out is not after its check-in.
	ErrInvalidDuration = errors.New("attendance duration must be positive")
)
