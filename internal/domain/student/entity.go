package student

import (
	"strings"
	"time"
)

type Student struct {
	ID            string
	StudentNumber string
	UserID        *string
	FirstName     string
	LastName      string
	GradeLevel    string
	Section       string
	RFIDCard      *string
	PhotoURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Class identifies a grade level and section pair.
type Class struct {
	GradeLevel string
	Section    string
}
