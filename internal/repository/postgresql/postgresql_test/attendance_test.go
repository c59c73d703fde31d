package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_ListLive(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	studentID := createTestStudent(t, db, "2025-0001", "Juan", "Dela Cruz", "Grade 7", "Sampaguita", strPtr("04A1B2C3"))
	base := time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		_, err := repo.Create(ctx, attendance.AttendanceRecord{
			StudentID: &studentID,
			RFIDCard:  strPtr("04A1B2C3"),
			ScanTime:  &at,
			Status:    strPtr(attendance.StatusPresent),
		})
		require.NoError(t, err)
	}

	t.Run("full poll is newest first and limited", func(t *testing.T) {
		records, err := repo.ListLive(ctx, attendance.LiveFilter{Limit: 3})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.True(t, records[0].ScanTime.Equal(base.Add(4*time.Minute)))
		assert.True(t, records[2].ScanTime.Equal(base.Add(2*time.Minute)))
		assert.Equal(t, "Juan", *records[0].StudentFirstName)
		assert.Equal(t, "Sampaguita", *records[0].Section)
	})

	t.Run("since is exclusive", func(t *testing.T) {
		since := base.Add(3 * time.Minute)
		records, err := repo.ListLive(ctx, attendance.LiveFilter{Limit: 50, Since: &since})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].ScanTime.Equal(base.Add(4*time.Minute)))
	})

	t.Run("nothing newer", func(t *testing.T) {
		since := base.Add(time.Hour)
		records, err := repo.ListLive(ctx, attendance.LiveFilter{Limit: 50, Since: &since})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestAttendanceRepository_UnknownCard(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	created, err := repo.Create(ctx, attendance.AttendanceRecord{
		RFIDCard: strPtr("FFFF0000"),
		Status:   strPtr(attendance.StatusPresent),
	})
	require.NoError(t, err)
	require.NotNil(t, created.ScanTime, "scan time defaults to now")

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StudentID)
	assert.False(t, got.HasStudent())

	live := got.ToLive()
	assert.Equal(t, attendance.UnknownStudentName, live.StudentName)
	assert.Equal(t, "FFFF0000", live.RFIDCard)
}

func TestAttendanceRepository_MissingScanTimeUsesCreatedAt(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	_, err := db.Exec(ctx, `
		INSERT INTO attendance_records (rfid_card, scan_time, status, created_at)
		VALUES ('AAAA1111', NULL, 'Present', '2025-06-02T08:00:00Z'),
		       ('BBBB2222', '2025-06-02T07:00:00Z', 'Present', '2025-06-02T09:00:00Z')
	`)
	require.NoError(t, err)

	records, err := repo.ListLive(ctx, attendance.LiveFilter{Limit: 50})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AAAA1111", *records[0].RFIDCard)
	assert.Nil(t, records[0].ScanTime)
	assert.True(t, records[0].ToLive().ScanTime.Equal(time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)))
}

func TestAttendanceRepository_GetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	_, err := repo.GetByID(context.Background(), "0190a3c4-5b6d-7e8f-9a0b-1c2d3e4f5a6b")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_CountStudentsScannedBetween(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	a := createTestStudent(t, db, "2025-0001", "Juan", "Dela Cruz", "Grade 7", "Sampaguita", nil)
	b := createTestStudent(t, db, "2025-0002", "Ana", "Reyes", "Grade 7", "Sampaguita", nil)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	for _, scan := range []struct {
		student *string
		at      time.Time
	}{
		{&a, day.Add(7 * time.Hour)},
		{&a, day.Add(12 * time.Hour)}, // same student twice
		{&b, day.Add(-time.Hour)},     // previous day
		{nil, day.Add(8 * time.Hour)}, // unknown card
	} {
		at := scan.at
		_, err := repo.Create(ctx, attendance.AttendanceRecord{StudentID: scan.student, RFIDCard: strPtr("CARD"), ScanTime: &at, Status: strPtr("Present")})
		require.NoError(t, err)
	}

	count, err := repo.CountStudentsScannedBetween(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
