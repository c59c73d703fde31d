package assignment

import "context"

type AssignmentService interface {
	// Teacher
	ListTeacherAssignments(ctx context.Context, teacherID string, filter AssignmentFilter) ([]AssignmentResponse, error)
	CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	ListTeacherSubmissions(ctx context.Context, teacherID string, filter SubmissionFilter) ([]SubmissionResponse, error)
	GradeSubmission(ctx context.Context, req GradeSubmissionRequest) (SubmissionResponse, error)

	// Student
	ListStudentAssignments(ctx context.Context, filter AssignmentFilter) ([]AssignmentResponse, error)
	ListStudentSubmissions(ctx context.Context, studentID string, filter SubmissionFilter) ([]SubmissionResponse, error)
	SubmitAssignment(ctx context.Context, req SubmitAssignmentRequest) (SubmitResult, error)
}
