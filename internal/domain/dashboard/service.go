package dashboard

import "context"

type DashboardService interface {
	// GetAdminStats serves cached stats, computing them on a cache miss.
	GetAdminStats(ctx context.Context) (AdminStats, error)
	// RefreshAdminStats recomputes and caches the admin stats.
	RefreshAdminStats(ctx context.Context) error
	GetTeacherStats(ctx context.Context, teacherID string) (TeacherStats, error)
}
