package user

type Permission string

const (
	// Attendance
	PermissionAttendanceLive   Permission = "attendance.live"
	PermissionAttendanceRecord Permission = "attendance.record"

	// Roster
	PermissionStudentViewAll Permission = "student.view_all"
	PermissionStudentManage  Permission = "student.manage"

	// Coursework
	PermissionAssignmentManage Permission = "assignment.manage"
	PermissionSubmissionGrade  Permission = "submission.grade"
	PermissionJournalManage    Permission = "journal.manage"
	PermissionAssignmentView   Permission = "assignment.view"
	PermissionSubmissionCreate Permission = "submission.create"

	// Dashboards
	PermissionAdminStats   Permission = "stats.admin"
	PermissionTeacherStats Permission = "stats.teacher"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceLive,
		PermissionAttendanceRecord,
		PermissionStudentViewAll,
		PermissionStudentManage,
		PermissionAdminStats,
	},
	RoleTeacher: {
		PermissionStudentViewAll,
		PermissionAssignmentManage,
		PermissionSubmissionGrade,
		PermissionJournalManage,
		PermissionTeacherStats,
	},
	RoleStudent: {
		PermissionAssignmentView,
		PermissionSubmissionCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
