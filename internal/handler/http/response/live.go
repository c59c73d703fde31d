package response

import (
	"net/http"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
)

// LiveFeed writes the live attendance feed body. The monitor depends on this
// flat shape rather than the usual envelope.
func LiveFeed(w http.ResponseWriter, records []attendance.LiveRecord) {
	if records == nil {
		records = []attendance.LiveRecord{}
	}
	writeJSON(w, http.StatusOK, attendance.LiveFeedResponse{
		Success: true,
		Records: records,
		Count:   len(records),
	})
}

// LiveFeedError writes a failed feed response with an empty record list.
func LiveFeedError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, attendance.LiveFeedResponse{
		Success: false,
		Records: []attendance.LiveRecord{},
		Error:   message,
	})
}
