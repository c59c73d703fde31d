package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidRole             = errors.New("invalid role")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrTeacherAccessRequired   = errors.New("teacher access required")
	ErrStudentAccessRequired   = errors.New("student access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrOAuthAccountNotLinked   = errors.New("no portal account is registered for this google email")
)
