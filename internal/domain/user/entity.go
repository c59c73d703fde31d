package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // School administration - live attendance, rosters
	RoleTeacher Role = "teacher" // Uploads assignments, grades, keeps a journal
	RoleStudent Role = "student" // Submits assignments
)

// Valid reports whether r is one of the known portal roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID              string
	Email           string
	FullName        string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join: profile row linked to the account, depending on Role
	StudentID *string
	TeacherID *string
}

// IsAdmin checks if user belongs to school administration
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsTeacher checks if user is a teacher
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// IsStudent checks if user is a student
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
