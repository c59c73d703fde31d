package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rovicpogi/Stoninonew/internal/domain/assignment"
	"github.com/rovicpogi/Stoninonew/internal/domain/student"
	"github.com/rovicpogi/Stoninonew/internal/pkg/database"
)

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) assignment.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

const assignmentColumns = `
	id, teacher_id, title, description, type, subject, grade_level, section,
	due_date, file_path, file_name, file_size, created_at, updated_at
`

func scanAssignment(row pgx.Row) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := row.Scan(
		&a.ID,
		&a.TeacherID,
		&a.Title,
		&a.Description,
		&a.Type,
		&a.Subject,
		&a.GradeLevel,
		&a.Section,
		&a.DueDate,
		&a.FilePath,
		&a.FileName,
		&a.FileSize,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func (r *assignmentRepositoryImpl) list(ctx context.Context, where []string, args []interface{}) ([]assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + ` FROM assignments`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]assignment.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// Create implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO assignments (
			teacher_id, title, description, type, subject, grade_level, section,
			due_date, file_path, file_name, file_size
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + assignmentColumns

	created, err := scanAssignment(q.QueryRow(ctx, query,
		a.TeacherID, a.Title, a.Description, a.Type, a.Subject, a.GradeLevel, a.Section,
		a.DueDate, a.FilePath, a.FileName, a.FileSize,
	))
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}
	return created, nil
}

// GetByID implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAssignment(q.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.Assignment{}, assignment.ErrAssignmentNotFound
		}
		return assignment.Assignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}
	return a, nil
}

// ListByTeacher implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) ListByTeacher(ctx context.Context, teacherID string, filter assignment.AssignmentFilter) ([]assignment.Assignment, error) {
	where := []string{"teacher_id = $1"}
	args := []interface{}{teacherID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	return r.list(ctx, where, args)
}

// ListForClass implements assignment.AssignmentRepository. Assignments posted
// without a grade level or section are visible to every class.
func (r *assignmentRepositoryImpl) ListForClass(ctx context.Context, filter assignment.AssignmentFilter) ([]assignment.Assignment, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.GradeLevel != "" {
		args = append(args, filter.GradeLevel)
		where = append(where, fmt.Sprintf("(grade_level = $%d OR grade_level IS NULL)", len(args)))
	}
	if filter.Section != "" {
		args = append(args, filter.Section)
		where = append(where, fmt.Sprintf("(section = $%d OR section IS NULL)", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	return r.list(ctx, where, args)
}

// CountByTeacher implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) CountByTeacher(ctx context.Context, teacherID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM assignments WHERE teacher_id = $1`, teacherID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}

// ClassesByTeacher implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) ClassesByTeacher(ctx context.Context, teacherID string) ([]student.Class, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT grade_level, section
		FROM assignments
		WHERE teacher_id = $1 AND grade_level IS NOT NULL AND section IS NOT NULL
		ORDER BY grade_level, section
	`
	rows, err := q.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher classes: %w", err)
	}
	defer rows.Close()

	classes := make([]student.Class, 0)
	for rows.Next() {
		var c student.Class
		if err := rows.Scan(&c.GradeLevel, &c.Section); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
