package dashboard

import "time"

// AdminStats summarises the school for the admin dashboard.
type AdminStats struct {
	TotalStudents  int64     `json:"total_students"`
	TotalTeachers  int64     `json:"total_teachers"`
	PresentToday   int64     `json:"present_today"`
	AttendanceRate float64   `json:"attendance_rate"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type TeacherStats struct {
	TotalStudents    int64 `json:"total_students"`
	PendingGrades    int64 `json:"pending_grades"`
	JournalEntries   int64 `json:"journal_entries"`
	TotalAssignments int64 `json:"total_assignments"`
}
