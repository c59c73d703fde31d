package attendance

import (
	"strings"
	"time"
)

const (
	StatusPresent = "Present"
	StatusLate    = "Late"

	// Shown for scans whose student profile could not be resolved.
	UnknownStudentName = "Unknown Student"
	NotAvailable       = "N/A"

	// MaxLiveLimit caps every live-feed query and the monitor's displayed list.
	MaxLiveLimit = 50
)

// AttendanceRecord is one stored scan event. Scans from unknown RFID cards
// have no linked student, so all student columns are nullable.
type AttendanceRecord struct {
	ID        string
	StudentID *string
	RFIDCard  *string
	ScanTime  *time.Time
	Status    *string
	CreatedAt time.Time

	// Joined from students
	StudentFirstName *string
	StudentLastName  *string
	GradeLevel       *string
	Section          *string
	PhotoURL         *string
}

// LiveRecord is the wire shape of a scan on the live attendance feed.
type LiveRecord struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"`
	GradeLevel   string    `json:"gradeLevel"`
	Section      string    `json:"section"`
	ScanTime     time.Time `json:"scanTime"`
	Status       string    `json:"status"`
	RFIDCard     string    `json:"rfidCard"`
	StudentPhoto *string   `json:"studentPhoto"`
}

// HasStudent reports whether the join found a student profile.
func (r AttendanceRecord) HasStudent() bool {
	return r.StudentFirstName != nil || r.StudentLastName != nil
}

// ToLive flattens the row into a LiveRecord, substituting placeholders for
// missing student data.
func (r AttendanceRecord) ToLive() LiveRecord {
	live := LiveRecord{
		ID:          r.ID,
		StudentID:   deref(r.StudentID),
		StudentName: UnknownStudentName,
		GradeLevel:  orNA(r.GradeLevel),
		Section:     orNA(r.Section),
		ScanTime:    r.CreatedAt,
		Status:      StatusPresent,
		RFIDCard:    orNA(r.RFIDCard),
	}

	if r.HasStudent() {
		live.StudentName = strings.TrimSpace(deref(r.StudentFirstName) + " " + deref(r.StudentLastName))
	}
	if r.ScanTime != nil {
		live.ScanTime = *r.ScanTime
	}
	if r.Status != nil && *r.Status != "" {
		live.Status = *r.Status
	}
	if r.PhotoURL != nil && *r.PhotoURL != "" {
		photo := *r.PhotoURL
		live.StudentPhoto = &photo
	}

	return live
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}
