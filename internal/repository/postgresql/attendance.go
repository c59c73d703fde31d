package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Rows without scan_time sort and filter by created_at, which is also what
// the feed shows as their scan time.
const liveSelect = `
	SELECT
		ar.id, ar.student_id, ar.rfid_card, ar.scan_time, ar.status, ar.created_at,
		s.first_name, s.last_name, s.grade_level, s.section, s.photo_url
	FROM attendance_records ar
	LEFT JOIN students s ON s.id = ar.student_id
`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	err := row.Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.RFIDCard,
		&rec.ScanTime,
		&rec.Status,
		&rec.CreatedAt,
		&rec.StudentFirstName,
		&rec.StudentLastName,
		&rec.GradeLevel,
		&rec.Section,
		&rec.PhotoURL,
	)
	return rec, err
}

// ListLive implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListLive(ctx context.Context, filter attendance.LiveFilter) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	var (
		where []string
		args  []interface{}
	)
	if filter.Since != nil {
		args = append(args, *filter.Since)
		where = append(where, fmt.Sprintf("COALESCE(ar.scan_time, ar.created_at) > $%d", len(args)))
	}

	query := liveSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, attendance.ClampLimit(filter.Limit))
	query += fmt.Sprintf(`
		ORDER BY COALESCE(ar.scan_time, ar.created_at) DESC, ar.created_at DESC, ar.id DESC
		LIMIT $%d`, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query live attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.AttendanceRecord, 0, filter.Limit)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (student_id, rfid_card, scan_time, status)
		VALUES ($1, $2, COALESCE($3, NOW()), $4)
		RETURNING id, scan_time, created_at
	`
	err := q.QueryRow(ctx, query, rec.StudentID, rec.RFIDCard, rec.ScanTime, rec.Status).
		Scan(&rec.ID, &rec.ScanTime, &rec.CreatedAt)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to insert attendance record: %w", err)
	}
	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanAttendance(q.QueryRow(ctx, liveSelect+" WHERE ar.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return rec, nil
}

// CountStudentsScannedBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountStudentsScannedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT student_id)
		FROM attendance_records
		WHERE student_id IS NOT NULL
		  AND COALESCE(scan_time, created_at) >= $1
		  AND COALESCE(scan_time, created_at) < $2
	`
	var count int64
	if err := q.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count scanned students: %w", err)
	}
	return count, nil
}
