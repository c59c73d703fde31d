package assignment

import "time"

const (
	TypeAssignment = "assignment"
	TypeLesson     = "lesson"

	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// Assignment is a handout (assignment or lesson) a teacher uploads for a class.
type Assignment struct {
	ID          string
	TeacherID   string
	Title       string
	Description *string
	Type        string
	Subject     *string
	GradeLevel  *string
	Section     *string
	DueDate     *time.Time
	FilePath    string
	FileName    string
	FileSize    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Submission is a student's uploaded work for an assignment. There is at most
// one per (assignment, student); resubmitting replaces the file.
type Submission struct {
	ID           string
	AssignmentID string
	StudentID    string
	FilePath     string
	FileName     string
	FileSize     int64
	Status       string
	Grade        *float64
	Feedback     *string
	SubmittedAt  time.Time
	GradedAt     *time.Time
	UpdatedAt    time.Time

	// Joined
	AssignmentTitle     string
	AssignmentTeacherID string
	StudentName         string
}
