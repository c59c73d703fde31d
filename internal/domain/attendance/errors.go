package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidScannerKey  = errors.New("invalid scanner key")
	ErrLiveFeedFailed     = errors.New("failed to fetch attendance records")
)
