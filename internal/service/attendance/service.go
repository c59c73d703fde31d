package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/domain/student"
	"github.com/rovicpogi/Stoninonew/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	student.StudentRepository
	publisher attendance.Publisher
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	studentRepository student.StudentRepository,
	publisher attendance.Publisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		StudentRepository:    studentRepository,
		publisher:            publisher,
	}
}

// ListLive implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListLive(ctx context.Context, filter attendance.LiveFilter) ([]attendance.LiveRecord, error) {
	filter.Limit = attendance.ClampLimit(filter.Limit)

	mode := metrics.ModeFull
	if filter.Since != nil {
		mode = metrics.ModeIncremental
	}
	metrics.LiveFeedQueries.WithLabelValues(mode).Inc()

	rows, err := a.AttendanceRepository.ListLive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", attendance.ErrLiveFeedFailed, err)
	}

	records := make([]attendance.LiveRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.ToLive())
	}
	return records, nil
}

// RecordScan implements attendance.AttendanceService. Cards not assigned to a
// student are still recorded, without a student link.
func (a *AttendanceServiceImpl) RecordScan(ctx context.Context, req attendance.ScanRequest) (attendance.LiveRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.LiveRecord{}, err
	}

	card := req.RFIDCard
	status := req.Status
	record := attendance.AttendanceRecord{
		RFIDCard: &card,
		ScanTime: req.ScanTime,
		Status:   &status,
	}

	s, err := a.StudentRepository.GetByRFIDCard(ctx, req.RFIDCard)
	switch {
	case err == nil:
		record.StudentID = &s.ID
	case errors.Is(err, student.ErrStudentNotFound):
		slog.Info("scan from unassigned rfid card", "rfid_card", req.RFIDCard)
	default:
		return attendance.LiveRecord{}, fmt.Errorf("failed to resolve rfid card: %w", err)
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.LiveRecord{}, fmt.Errorf("failed to record scan: %w", err)
	}
	metrics.ScansRecorded.Inc()

	stored, err := a.AttendanceRepository.GetByID(ctx, created.ID)
	if err != nil {
		return attendance.LiveRecord{}, fmt.Errorf("failed to load recorded scan: %w", err)
	}
	live := stored.ToLive()

	// Pollers still see the scan on their next cycle if the push fails.
	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, live); err != nil {
			slog.Warn("failed to publish scan", "attendance_id", live.ID, "error", err)
		}
	}

	return live, nil
}
