package assignment

import (
	"context"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/student"
)

type AssignmentRepository interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	GetByID(ctx context.Context, id string) (Assignment, error)
	// ListByTeacher returns the teacher's assignments, newest first.
	ListByTeacher(ctx context.Context, teacherID string, filter AssignmentFilter) ([]Assignment, error)
	// ListForClass returns assignments matching the filter, newest first.
	ListForClass(ctx context.Context, filter AssignmentFilter) ([]Assignment, error)
	CountByTeacher(ctx context.Context, teacherID string) (int64, error)
	// ClassesByTeacher lists the distinct classes the teacher has posted to.
	ClassesByTeacher(ctx context.Context, teacherID string) ([]student.Class, error)
}

type SubmissionRepository interface {
	// GetByID returns the submission joined with its assignment.
	GetByID(ctx context.Context, id string) (Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (Submission, error)
	Create(ctx context.Context, s Submission) (Submission, error)
	// Resubmit replaces the file of an existing submission and resets it to submitted.
	Resubmit(ctx context.Context, s Submission) (Submission, error)
	Grade(ctx context.Context, id string, grade *float64, feedback *string, status string, gradedAt time.Time) (Submission, error)
	// ListForTeacher returns submissions to the teacher's assignments, newest first.
	ListForTeacher(ctx context.Context, teacherID string, filter SubmissionFilter) ([]Submission, error)
	ListForStudent(ctx context.Context, studentID string, filter SubmissionFilter) ([]Submission, error)
	CountPendingForTeacher(ctx context.Context, teacherID string) (int64, error)
}
