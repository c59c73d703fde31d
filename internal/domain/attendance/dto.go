package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/pkg/validator"
)

// LiveFilter selects the newest scans, optionally only those strictly after Since.
type LiveFilter struct {
	Limit int
	Since *time.Time
}

// ParseLiveFilter reads the limit and since query parameters. An empty limit
// defaults to MaxLiveLimit and out-of-range values are clamped to 1..MaxLiveLimit.
func ParseLiveFilter(limitStr, sinceStr string) (LiveFilter, error) {
	var errs validator.ValidationErrors
	filter := LiveFilter{Limit: MaxLiveLimit}

	if limitStr = strings.TrimSpace(limitStr); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			errs.Add("limit", "limit must be an integer")
		} else {
			filter.Limit = ClampLimit(limit)
		}
	}

	if sinceStr = strings.TrimSpace(sinceStr); sinceStr != "" {
		since, ok := validator.IsValidDateTime(sinceStr)
		if !ok {
			errs.Add("since", "since must be an RFC3339 timestamp")
		} else {
			filter.Since = &since
		}
	}

	if err := errs.OrNil(); err != nil {
		return LiveFilter{}, err
	}
	return filter, nil
}

func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLiveLimit {
		return MaxLiveLimit
	}
	return limit
}

// LiveFeedResponse is the body of GET /admin/attendance-live. On failure
// Success is false, Error is set and Records is an empty list.
type LiveFeedResponse struct {
	Success bool         `json:"success"`
	Records []LiveRecord `json:"records"`
	Count   int          `json:"count"`
	Error   string       `json:"error,omitempty"`
}

// ScanRequest is posted by a gate RFID reader.
type ScanRequest struct {
	RFIDCard string     `json:"rfid_card"`
	ScanTime *time.Time `json:"scan_time,omitempty"`
	Status   string     `json:"status,omitempty"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	r.RFIDCard = strings.TrimSpace(r.RFIDCard)
	if validator.IsEmpty(r.RFIDCard) {
		errs.Add("rfid_card", "rfid_card is required")
	} else if !validator.IsValidRFIDCard(r.RFIDCard) {
		errs.Add("rfid_card", "rfid_card must be 4-32 alphanumeric characters")
	}

	if r.Status == "" {
		r.Status = StatusPresent
	} else if !validator.IsInSlice(r.Status, []string{StatusPresent, StatusLate}) {
		errs.Add("status", "status must be one of: Present, Late")
	}

	return errs.OrNil()
}
