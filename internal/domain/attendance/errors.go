package attendance

import "errors"

var (
	ErrNotClockedIn       = errors.New("no clock-in record found for today")
	ErrAlreadyClockedOut  = errors.New("you have already clocked out today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateDay       = errors.New("attendance record already exists for this day")
)
