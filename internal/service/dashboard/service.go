package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/assignment"
	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/domain/dashboard"
	"github.com/rovicpogi/Stoninonew/internal/domain/journal"
	"github.com/rovicpogi/Stoninonew/internal/domain/student"
	"github.com/rovicpogi/Stoninonew/internal/domain/user"
	"github.com/rovicpogi/Stoninonew/internal/pkg/cache"
	"golang.org/x/sync/errgroup"
)

const (
	adminStatsKey = "admin_stats"
	// adminStatsTTL outlives one refresh interval so the cron job keeps the entry warm.
	adminStatsTTL = 10 * time.Minute

	// RefreshInterval is how often the cron job recomputes admin stats.
	RefreshInterval = 5 * time.Minute
	RefreshJobName  = "refresh_admin_stats"
)

type DashboardServiceImpl struct {
	studentRepo    student.StudentRepository
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	assignmentRepo assignment.AssignmentRepository
	submissionRepo assignment.SubmissionRepository
	journalRepo    journal.JournalRepository
	cache          cache.Cache
	loc            *time.Location
	now            func() time.Time
}

type Repositories struct {
	Students    student.StudentRepository
	Users       user.UserRepository
	Attendance  attendance.AttendanceRepository
	Assignments assignment.AssignmentRepository
	Submissions assignment.SubmissionRepository
	Journal     journal.JournalRepository
}

func NewDashboardService(repos Repositories, statsCache cache.Cache, loc *time.Location) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		studentRepo:    repos.Students,
		userRepo:       repos.Users,
		attendanceRepo: repos.Attendance,
		assignmentRepo: repos.Assignments,
		submissionRepo: repos.Submissions,
		journalRepo:    repos.Journal,
		cache:          statsCache,
		loc:            loc,
		now:            time.Now,
	}
}

// GetAdminStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetAdminStats(ctx context.Context) (dashboard.AdminStats, error) {
	var stats dashboard.AdminStats
	err := s.cache.Get(ctx, adminStatsKey, &stats)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("admin stats cache read failed", "error", err)
	}

	stats, err = s.computeAdminStats(ctx)
	if err != nil {
		return dashboard.AdminStats{}, err
	}
	s.store(ctx, stats)
	return stats, nil
}

// RefreshAdminStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) RefreshAdminStats(ctx context.Context) error {
	stats, err := s.computeAdminStats(ctx)
	if err != nil {
		return err
	}
	s.store(ctx, stats)
	return nil
}

func (s *DashboardServiceImpl) store(ctx context.Context, stats dashboard.AdminStats) {
	if err := s.cache.Set(ctx, adminStatsKey, stats, adminStatsTTL); err != nil {
		slog.Warn("admin stats cache write failed", "error", err)
	}
}

func (s *DashboardServiceImpl) computeAdminStats(ctx context.Context) (dashboard.AdminStats, error) {
	now := s.now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var stats dashboard.AdminStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.TotalStudents, err = s.studentRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("count students: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats.TotalTeachers, err = s.userRepo.CountByRole(gctx, user.RoleTeacher)
		if err != nil {
			return fmt.Errorf("count teachers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats.PresentToday, err = s.attendanceRepo.CountStudentsScannedBetween(gctx, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("count present students: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminStats{}, err
	}

	stats.AttendanceRate = dashboard.AttendanceRate(stats.PresentToday, stats.TotalStudents)
	stats.GeneratedAt = now.UTC()
	return stats, nil
}

// GetTeacherStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetTeacherStats(ctx context.Context, teacherID string) (dashboard.TeacherStats, error) {
	var stats dashboard.TeacherStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		classes, err := s.assignmentRepo.ClassesByTeacher(gctx, teacherID)
		if err != nil {
			return fmt.Errorf("list teacher classes: %w", err)
		}
		if len(classes) == 0 {
			return nil
		}
		stats.TotalStudents, err = s.studentRepo.CountInClasses(gctx, classes)
		if err != nil {
			return fmt.Errorf("count students in classes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats.PendingGrades, err = s.submissionRepo.CountPendingForTeacher(gctx, teacherID)
		if err != nil {
			return fmt.Errorf("count pending submissions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats.JournalEntries, err = s.journalRepo.CountByTeacher(gctx, teacherID)
		if err != nil {
			return fmt.Errorf("count journal entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats.TotalAssignments, err = s.assignmentRepo.CountByTeacher(gctx, teacherID)
		if err != nil {
			return fmt.Errorf("count assignments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.TeacherStats{}, err
	}
	return stats, nil
}
