package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for scan events.
type AttendanceRepository interface {
	// ListLive returns scans joined with their student, newest scan_time first.
	ListLive(ctx context.Context, filter LiveFilter) ([]AttendanceRecord, error)

	// Create stores a scan event.
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByID returns a scan joined with its student.
	GetByID(ctx context.Context, id string) (AttendanceRecord, error)

	// CountStudentsScannedBetween counts distinct linked students with a scan in [from, to).
	CountStudentsScannedBetween(ctx context.Context, from, to time.Time) (int64, error)
}
