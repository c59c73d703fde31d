package assignment

import "errors"

var (
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrNotAssignmentOwner    = errors.New("this submission does not belong to your assignment")
	ErrInvalidAssignmentType = errors.New(`type must be either "assignment" or "lesson"`)
	ErrFileRequired          = errors.New("file is required")
)
