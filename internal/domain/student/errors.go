package student

import "errors"

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrPhotoRequired   = errors.New("photo file is required")
)
