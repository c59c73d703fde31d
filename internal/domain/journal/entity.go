package journal

import "time"

// Entry is one day's teaching log.
type Entry struct {
	ID         string
	TeacherID  string
	EntryDate  time.Time
	Subject    string
	Topic      string
	Activities *string
	Notes      *string
	CreatedAt  time.Time
}
