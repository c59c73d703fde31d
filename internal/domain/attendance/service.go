package attendance

import "context"

// Publisher fans a freshly recorded scan out to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, record LiveRecord) error
}

type AttendanceService interface {
	// ListLive serves the live attendance feed.
	ListLive(ctx context.Context, filter LiveFilter) ([]LiveRecord, error)

	// RecordScan resolves the card to a student, stores the scan and publishes it.
	RecordScan(ctx context.Context, req ScanRequest) (LiveRecord, error)
}
