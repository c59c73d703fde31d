package assignment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/assignment"
	"github.com/rovicpogi/Stoninonew/internal/service/file"
)

type AssignmentServiceImpl struct {
	assignment.AssignmentRepository
	assignment.SubmissionRepository
	fileService file.FileService
	now         func() time.Time
}

func NewAssignmentService(
	assignmentRepository assignment.AssignmentRepository,
	submissionRepository assignment.SubmissionRepository,
	fileService file.FileService,
) assignment.AssignmentService {
	return &AssignmentServiceImpl{
		AssignmentRepository: assignmentRepository,
		SubmissionRepository: submissionRepository,
		fileService:          fileService,
		now:                  time.Now,
	}
}

func (s *AssignmentServiceImpl) toAssignmentResponse(a assignment.Assignment) assignment.AssignmentResponse {
	return assignment.AssignmentResponse{
		ID:          a.ID,
		TeacherID:   a.TeacherID,
		Title:       a.Title,
		Description: a.Description,
		Type:        a.Type,
		Subject:     a.Subject,
		GradeLevel:  a.GradeLevel,
		Section:     a.Section,
		DueDate:     a.DueDate,
		FileURL:     s.fileService.FileURL(a.FilePath),
		FileName:    a.FileName,
		FileSize:    a.FileSize,
		CreatedAt:   a.CreatedAt,
	}
}

func (s *AssignmentServiceImpl) toSubmissionResponse(sub assignment.Submission) assignment.SubmissionResponse {
	return assignment.SubmissionResponse{
		ID:              sub.ID,
		AssignmentID:    sub.AssignmentID,
		AssignmentTitle: sub.AssignmentTitle,
		StudentID:       sub.StudentID,
		StudentName:     sub.StudentName,
		FileURL:         s.fileService.FileURL(sub.FilePath),
		FileName:        sub.FileName,
		FileSize:        sub.FileSize,
		Status:          sub.Status,
		Grade:           sub.Grade,
		Feedback:        sub.Feedback,
		SubmittedAt:     sub.SubmittedAt,
		GradedAt:        sub.GradedAt,
	}
}

func (s *AssignmentServiceImpl) assignmentResponses(items []assignment.Assignment) []assignment.AssignmentResponse {
	responses := make([]assignment.AssignmentResponse, 0, len(items))
	for _, a := range items {
		responses = append(responses, s.toAssignmentResponse(a))
	}
	return responses
}

func (s *AssignmentServiceImpl) submissionResponses(items []assignment.Submission) []assignment.SubmissionResponse {
	responses := make([]assignment.SubmissionResponse, 0, len(items))
	for _, sub := range items {
		responses = append(responses, s.toSubmissionResponse(sub))
	}
	return responses
}

// removeFile is best effort; an orphaned upload is only logged.
func (s *AssignmentServiceImpl) removeFile(ctx context.Context, path string) {
	if err := s.fileService.DeleteFile(ctx, path); err != nil {
		slog.Error("failed to remove stored file", "path", path, "error", err)
	}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// ListTeacherAssignments implements assignment.AssignmentService.
func (s *AssignmentServiceImpl) ListTeacherAssignments(ctx context.Context, teacherID string, filter assignment.AssignmentFilter) ([]assignment.AssignmentResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := s.AssignmentRepository.ListByTeacher(ctx, teacherID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return s.assignmentResponses(items), nil
}

// CreateAssignment implements assignment.AssignmentService.
func (s *AssignmentServiceImpl) CreateAssignment(ctx context.Context, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	path, err := s.fileService.UploadAssignmentFile(ctx, req.TeacherID, req.File, req.FileHeader.Filename)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	created, err := s.AssignmentRepository.Create(ctx, assignment.Assignment{
		TeacherID:   req.TeacherID,
		Title:       req.Title,
		Description: optional(req.Description),
		Type:        req.Type,
		Subject:     optional(req.Subject),
		GradeLevel:  optional(req.GradeLevel),
		Section:     optional(req.Section),
		DueDate:     req.DueAt(),
		FilePath:    path,
		FileName:    req.FileHeader.Filename,
		FileSize:    req.FileHeader.Size,
	})
	if err != nil {
		s.removeFile(ctx, path)
		return assignment.AssignmentResponse{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return s.toAssignmentResponse(created), nil
}

// ListTeacherSubmissions implements assignment.AssignmentService.
func (s *AssignmentServiceImpl) ListTeacherSubmissions(ctx context.Context, teacherID string, filter assignment.SubmissionFilter) ([]assignment.SubmissionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := s.SubmissionRepository.ListForTeacher(ctx, teacherID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return s.submissionResponses(items), nil
}

// GradeSubmission implements assignment.AssignmentService.
func (s *AssignmentServiceImpl) GradeSubmission(ctx context.Context, req assignment.GradeSubmissionRequest) (assignment.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return assignment.SubmissionResponse{}, err
	}

	existing, err := s.SubmissionRepository.GetByID(ctx, req.SubmissionID)
	if err != nil {
		return assignment.SubmissionResponse{}, err
	}
	if existing.AssignmentTeacherID != req.TeacherID {
		return assignment.SubmissionResponse{}, assignment.ErrNotAssignmentOwner
	}

	status := assignment.SubmissionStatusSubmitted
	if req.Grade != nil {
		status = assignment.SubmissionStatusGraded
	}

	graded, err := s.SubmissionRepository.Grade(ctx, existing.ID, req.Grade, req.Feedback, status, s.now().UTC())
	if err != nil {
		return assignment.SubmissionResponse{}, err
	}
	return s.toSubmissionResponse(graded), nil
}

// ListStudentAssignments implements assignment.AssignmentService.
func (s *AssignmentServiceImpl) ListStudentAssignments(ctx context.Context, filter assignment.AssignmentFilter) ([]assignment.AssignmentResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := s.AssignmentRepository.ListForClass(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return s.assignmentResponses(items), nil
}

// ListStudentSubmissions implements assignment.AssignmentService.
func (s *AssignmentServiceImpl) ListStudentSubmissions(ctx context.Context, studentID string, filter assignment.SubmissionFilter) ([]assignment.SubmissionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := s.SubmissionRepository.ListForStudent(ctx, studentID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return s.submissionResponses(items), nil
}

// SubmitAssignment implements assignment.AssignmentService. A second
// submission replaces the first one's file and resets it to submitted.
func (s *AssignmentServiceImpl) SubmitAssignment(ctx context.Context, req assignment.SubmitAssignmentRequest) (assignment.SubmitResult, error) {
	if err := req.Validate(); err != nil {
		return assignment.SubmitResult{}, err
	}

	if _, err := s.AssignmentRepository.GetByID(ctx, req.AssignmentID); err != nil {
		return assignment.SubmitResult{}, err
	}

	previous, err := s.SubmissionRepository.GetByAssignmentAndStudent(ctx, req.AssignmentID, req.StudentID)
	resubmit := err == nil
	if err != nil && !errors.Is(err, assignment.ErrSubmissionNotFound) {
		return assignment.SubmitResult{}, fmt.Errorf("failed to look up submission: %w", err)
	}

	path, err := s.fileService.UploadSubmissionFile(ctx, req.AssignmentID, req.StudentID, req.File, req.FileHeader.Filename)
	if err != nil {
		return assignment.SubmitResult{}, err
	}

	sub := assignment.Submission{
		AssignmentID: req.AssignmentID,
		StudentID:    req.StudentID,
		FilePath:     path,
		FileName:     req.FileHeader.Filename,
		FileSize:     req.FileHeader.Size,
	}

	var saved assignment.Submission
	if resubmit {
		sub.ID = previous.ID
		saved, err = s.SubmissionRepository.Resubmit(ctx, sub)
	} else {
		saved, err = s.SubmissionRepository.Create(ctx, sub)
	}
	if err != nil {
		s.removeFile(ctx, path)
		return assignment.SubmitResult{}, fmt.Errorf("failed to save submission: %w", err)
	}

	if resubmit && previous.FilePath != "" && previous.FilePath != path {
		s.removeFile(ctx, previous.FilePath)
	}

	return assignment.SubmitResult{
		Submission:  s.toSubmissionResponse(saved),
		Resubmitted: resubmit,
	}, nil
}
