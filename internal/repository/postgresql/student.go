package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rovicpogi/Stoninonew/internal/domain/student"
	"github.com/rovicpogi/Stoninonew/internal/pkg/database"
)

type studentRepositoryImpl struct {
	db *database.DB
}

func NewStudentRepository(db *database.DB) student.StudentRepository {
	return &studentRepositoryImpl{db: db}
}

const studentColumns = `
	s.id, s.student_number, u.id, s.first_name, s.last_name, s.grade_level, s.section,
	s.rfid_card, s.photo_url, s.created_at, s.updated_at
`

const studentFrom = `
	FROM students s
	LEFT JOIN users u ON u.student_id = s.id
`

func scanStudent(row pgx.Row) (student.Student, error) {
	var s student.Student
	err := row.Scan(
		&s.ID,
		&s.StudentNumber,
		&s.UserID,
		&s.FirstName,
		&s.LastName,
		&s.GradeLevel,
		&s.Section,
		&s.RFIDCard,
		&s.PhotoURL,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (r *studentRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (student.Student, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanStudent(q.QueryRow(ctx, `SELECT `+studentColumns+studentFrom+` WHERE `+where+` LIMIT 1`, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return student.Student{}, student.ErrStudentNotFound
		}
		return student.Student{}, fmt.Errorf("failed to get student: %w", err)
	}
	return s, nil
}

// GetByID implements student.StudentRepository.
func (r *studentRepositoryImpl) GetByID(ctx context.Context, id string) (student.Student, error) {
	return r.getOne(ctx, "s.id = $1", id)
}

// GetByRFIDCard implements student.StudentRepository.
func (r *studentRepositoryImpl) GetByRFIDCard(ctx context.Context, card string) (student.Student, error) {
	return r.getOne(ctx, "UPPER(s.rfid_card) = UPPER($1)", card)
}

// List implements student.StudentRepository.
func (r *studentRepositoryImpl) List(ctx context.Context, filter student.StudentFilter) ([]student.Student, error) {
	q := GetQuerier(ctx, r.db)

	var (
		where []string
		args  []interface{}
	)
	if filter.GradeLevel != "" {
		args = append(args, filter.GradeLevel)
		where = append(where, fmt.Sprintf("s.grade_level = $%d", len(args)))
	}
	if filter.Section != "" {
		args = append(args, filter.Section)
		where = append(where, fmt.Sprintf("s.section = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf(
			"(s.first_name ILIKE $%[1]d OR s.last_name ILIKE $%[1]d OR s.student_number ILIKE $%[1]d)", len(args)))
	}

	query := `SELECT ` + studentColumns + studentFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.grade_level, s.section, s.last_name, s.first_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := make([]student.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Count implements student.StudentRepository.
func (r *studentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// CountInClasses implements student.StudentRepository.
func (r *studentRepositoryImpl) CountInClasses(ctx context.Context, classes []student.Class) (int64, error) {
	if len(classes) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	grades := make([]string, len(classes))
	sections := make([]string, len(classes))
	for i, c := range classes {
		grades[i] = c.GradeLevel
		sections[i] = c.Section
	}

	query := `
		SELECT COUNT(*)
		FROM students s
		JOIN UNNEST($1::text[], $2::text[]) AS c(grade_level, section)
		  ON c.grade_level = s.grade_level AND c.section = s.section
	`
	var count int64
	if err := q.QueryRow(ctx, query, grades, sections).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students in classes: %w", err)
	}
	return count, nil
}

// UpdatePhotoURL implements student.StudentRepository.
func (r *studentRepositoryImpl) UpdatePhotoURL(ctx context.Context, id string, photoURL string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE students SET photo_url = $1, updated_at = NOW() WHERE id = $2`, photoURL, id)
	if err != nil {
		return fmt.Errorf("failed to update student photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return student.ErrStudentNotFound
	}
	return nil
}
