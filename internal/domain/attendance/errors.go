package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrInvalidClockFormat = errors.New("clock time must be HH:mm")
	ErrRecordLocked       = errors.New("attendance record is covered by a finalized payroll run")
)
