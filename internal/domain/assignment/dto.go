package assignment

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/pkg/validator"
)

const MaxFileSize = 25 << 20

// ========================================
// TEACHER
// ========================================

type CreateAssignmentRequest struct {
	TeacherID   string                `json:"-"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Type        string                `json:"type"`
	Subject     string                `json:"subject"`
	GradeLevel  string                `json:"grade_level"`
	Section     string                `json:"section"`
	DueDate     string                `json:"due_date"`
	File        multipart.File        `json:"-"`
	FileHeader  *multipart.FileHeader `json:"-"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	errs.Required("title", r.Title)
	if len(r.Title) > 255 {
		errs.Add("title", "title must not exceed 255 characters")
	}

	if validator.IsEmpty(r.Type) {
		errs.Add("type", "type is required")
	} else if !validator.IsInSlice(r.Type, []string{TypeAssignment, TypeLesson}) {
		errs.Add("type", ErrInvalidAssignmentType.Error())
	}

	if r.DueDate != "" {
		if _, ok := validator.ParseDueDate(r.DueDate); !ok {
			errs.Add("due_date", "due_date must be YYYY-MM-DD or an RFC3339 timestamp")
		}
	}

	validateFile(&errs, r.File, r.FileHeader)

	return errs.OrNil()
}

// DueAt returns the parsed due date, nil when not given.
func (r *CreateAssignmentRequest) DueAt() *time.Time {
	if r.DueDate == "" {
		return nil
	}
	t, ok := validator.ParseDueDate(r.DueDate)
	if !ok {
		return nil
	}
	return &t
}

type AssignmentFilter struct {
	Type       string
	GradeLevel string
	Section    string
}

func (f AssignmentFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Type != "" && !validator.IsInSlice(f.Type, []string{TypeAssignment, TypeLesson}) {
		errs.Add("type", ErrInvalidAssignmentType.Error())
	}
	return errs.OrNil()
}

type SubmissionFilter struct {
	AssignmentID string
}

func (f SubmissionFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.AssignmentID != "" && !validator.IsValidUUID(f.AssignmentID) {
		errs.Add("assignment_id", "assignment_id must be a valid UUID")
	}
	return errs.OrNil()
}

type GradeSubmissionRequest struct {
	SubmissionID string   `json:"-"`
	TeacherID    string   `json:"-"`
	Grade        *float64 `json:"grade"`
	Feedback     *string  `json:"feedback"`
}

func (r *GradeSubmissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.SubmissionID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Grade != nil && (*r.Grade < 0 || *r.Grade > 100) {
		errs.Add("grade", "grade must be between 0 and 100")
	}
	if r.Feedback != nil && len(*r.Feedback) > 5000 {
		errs.Add("feedback", "feedback must not exceed 5000 characters")
	}

	return errs.OrNil()
}

// ========================================
// STUDENT
// ========================================

type SubmitAssignmentRequest struct {
	AssignmentID string                `json:"assignment_id"`
	StudentID    string                `json:"-"`
	File         multipart.File        `json:"-"`
	FileHeader   *multipart.FileHeader `json:"-"`
}

func (r *SubmitAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AssignmentID) {
		errs.Add("assignment_id", "assignment_id is required")
	} else if !validator.IsValidUUID(r.AssignmentID) {
		errs.Add("assignment_id", "assignment_id must be a valid UUID")
	}

	validateFile(&errs, r.File, r.FileHeader)

	return errs.OrNil()
}

func validateFile(errs *validator.ValidationErrors, file multipart.File, header *multipart.FileHeader) {
	switch {
	case file == nil || header == nil:
		errs.Add("file", ErrFileRequired.Error())
	case header.Size > MaxFileSize:
		errs.Add("file", "file size must not exceed 25MB")
	}
}

// ========================================
// RESPONSES
// ========================================

type AssignmentResponse struct {
	ID          string     `json:"id"`
	TeacherID   string     `json:"teacher_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Type        string     `json:"type"`
	Subject     *string    `json:"subject"`
	GradeLevel  *string    `json:"grade_level"`
	Section     *string    `json:"section"`
	DueDate     *time.Time `json:"due_date"`
	FileURL     string     `json:"file_url"`
	FileName    string     `json:"file_name"`
	FileSize    int64      `json:"file_size"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SubmissionResponse struct {
	ID              string     `json:"id"`
	AssignmentID    string     `json:"assignment_id"`
	AssignmentTitle string     `json:"assignment_title,omitempty"`
	StudentID       string     `json:"student_id"`
	StudentName     string     `json:"student_name,omitempty"`
	FileURL         string     `json:"file_url"`
	FileName        string     `json:"file_name"`
	FileSize        int64      `json:"file_size"`
	Status          string     `json:"status"`
	Grade           *float64   `json:"grade"`
	Feedback        *string    `json:"feedback"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	GradedAt        *time.Time `json:"graded_at"`
}

// SubmitResult tells the handler whether the submission replaced an earlier one.
type SubmitResult struct {
	Submission  SubmissionResponse
	Resubmitted bool
}
