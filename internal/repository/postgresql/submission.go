package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rovicpogi/Stoninonew/internal/domain/assignment"
	"github.com/rovicpogi/Stoninonew/internal/pkg/database"
)

type submissionRepositoryImpl struct {
	db *database.DB
}

func NewSubmissionRepository(db *database.DB) assignment.SubmissionRepository {
	return &submissionRepositoryImpl{db: db}
}

const submissionSelect = `
	SELECT
		sub.id, sub.assignment_id, sub.student_id, sub.file_path, sub.file_name, sub.file_size,
		sub.status, sub.grade, sub.feedback, sub.submitted_at, sub.graded_at, sub.updated_at,
		a.title, a.teacher_id,
		TRIM(COALESCE(st.first_name, '') || ' ' || COALESCE(st.last_name, ''))
	FROM assignment_submissions sub
	JOIN assignments a ON a.id = sub.assignment_id
	LEFT JOIN students st ON st.id = sub.student_id
`

func scanSubmission(row pgx.Row) (assignment.Submission, error) {
	var s assignment.Submission
	err := row.Scan(
		&s.ID,
		&s.AssignmentID,
		&s.StudentID,
		&s.FilePath,
		&s.FileName,
		&s.FileSize,
		&s.Status,
		&s.Grade,
		&s.Feedback,
		&s.SubmittedAt,
		&s.GradedAt,
		&s.UpdatedAt,
		&s.AssignmentTitle,
		&s.AssignmentTeacherID,
		&s.StudentName,
	)
	return s, err
}

func (r *submissionRepositoryImpl) getOne(ctx context.Context, where string, args ...interface{}) (assignment.Submission, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSubmission(q.QueryRow(ctx, submissionSelect+" WHERE "+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.Submission{}, assignment.ErrSubmissionNotFound
		}
		return assignment.Submission{}, fmt.Errorf("failed to get submission: %w", err)
	}
	return s, nil
}

func (r *submissionRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]assignment.Submission, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, submissionSelect+" WHERE "+where+" ORDER BY sub.submitted_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]assignment.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// GetByID implements assignment.SubmissionRepository.
func (r *submissionRepositoryImpl) GetByID(ctx context.Context, id string) (assignment.Submission, error) {
	return r.getOne(ctx, "sub.id = $1", id)
}

// GetByAssignmentAndStudent implements assignment.SubmissionRepository.
func (r *submissionRepositoryImpl) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (assignment.Submission, error) {
	return r.getOne(ctx, "sub.assignment_id = $1 AND sub.student_id = $2", assignmentID, studentID)
}

// Create implements assignment.SubmissionRepository.
func (r *submissionRepositoryImpl) Create(ctx context.Context, s assignment.Submission) (assignment.Submission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO assignment_submissions (assignment_id, student_id, file_path, file_name, file_size, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id string
	err := q.QueryRow(ctx, query, s.AssignmentID, s.StudentID, s.FilePath, s.FileName, s.FileSize, assignment.SubmissionStatusSubmitted).Scan(&id)
	if err != nil {
		return assignment.Submission{}, fmt.Errorf("failed to create submission: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Resubmit implements assignment.SubmissionRepository.
func (r *submissionRepositoryImpl) Resubmit(ctx context.Context, s assignment.Submission) (assignment.Submission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE assignment_submissions
		SET file_path = $1, file_name = $2, file_size = $3, status = $4,
		    submitted_at = NOW(), updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, s.FilePath, s.FileName, s.FileSize, assignment.SubmissionStatusSubmitted, s.ID)
	if err != nil {
		return assignment.Submission{}, fmt.Errorf("failed to update submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return assignment.Submission{}, assignment.ErrSubmissionNotFound
	}
	return r.GetByID(ctx, s.ID)
}

// Grade implements assignment.SubmissionRepository. A nil grade or feedback keeps the stored value.
func (r *submissionRepositoryImpl) Grade(ctx context.Context, id string, grade *float64, feedback *string, status string, gradedAt time.Time) (assignment.Submission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE assignment_submissions
		SET grade = COALESCE($1, grade),
		    feedback = COALESCE($2, feedback),
		    status = $3,
		    graded_at = $4,
		    updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, grade, feedback, status, gradedAt, id)
	if err != nil {
		return assignment.Submission{}, fmt.Errorf("failed to grade submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return assignment.Submission{}, assignment.ErrSubmissionNotFound
	}
	return r.GetByID(ctx, id)
}

// ListForTeacher implements assignment.SubmissionRepository.
func (r *submissionRepositoryImpl) ListForTeacher(ctx context.Context, teacherID string, filter assignment.SubmissionFilter) ([]assignment.Submission, error) {
	if filter.AssignmentID != "" {
		return r.list(ctx, "a.teacher_id = $1 AND sub.assignment_id = $2", teacherID, filter.AssignmentID)
	}
	return r.list(ctx, "a.teacher_id = $1", teacherID)
}

// ListForStudent implements assignment.SubmissionRepository.
func (r *submissionRepositoryImpl) ListForStudent(ctx context.Context, studentID string, filter assignment.SubmissionFilter) ([]assignment.Submission, error) {
	if filter.AssignmentID != "" {
		return r.list(ctx, "sub.student_id = $1 AND sub.assignment_id = $2", studentID, filter.AssignmentID)
	}
	return r.list(ctx, "sub.student_id = $1", studentID)
}

// CountPendingForTeacher implements assignment.SubmissionRepository.
func (r *submissionRepositoryImpl) CountPendingForTeacher(ctx context.Context, teacherID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM assignment_submissions sub
		JOIN assignments a ON a.id = sub.assignment_id
		WHERE a.teacher_id = $1 AND sub.status = $2
	`
	var count int64
	if err := q.QueryRow(ctx, query, teacherID, assignment.SubmissionStatusSubmitted).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending submissions: %w", err)
	}
	return count, nil
}
