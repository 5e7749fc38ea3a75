package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("employee has already checked in today")
	ErrNotCheckedIn      = errors.New("employee has not checked in yet")
	ErrAlreadyCheckedOut = errors.New("employee has already checked out")

	// General errors
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrOvertimeRequestNotFound = errors.New("overtime request not found")
	ErrOvertimeAlreadyReviewed = errors.New("overtime request has already been reviewed")
	ErrCheckOutBeforeCheckIn   = errors.New("check-out must be after check-in")
)
