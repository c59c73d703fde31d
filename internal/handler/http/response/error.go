package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rovicpogi/Stoninonew/internal/domain/assignment"
	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/domain/auth"
	"github.com/rovicpogi/Stoninonew/internal/domain/journal"
	"github.com/rovicpogi/Stoninonew/internal/domain/student"
	"github.com/rovicpogi/Stoninonew/internal/domain/user"
	"github.com/rovicpogi/Stoninonew/internal/pkg/session"
	"github.com/rovicpogi/Stoninonew/internal/pkg/storage"
	"github.com/rovicpogi/Stoninonew/internal/pkg/validator"
	"github.com/rovicpogi/Stoninonew/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth / session
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound), errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, session.ErrNoSession), errors.Is(err, auth.ErrSessionNotFound):
		Unauthorized(w, "Not signed in")
	case errors.Is(err, auth.ErrInvalidOAuthState):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrGoogleEmailNotVerified):
		Forbidden(w, "Google email is not verified")
	case errors.Is(err, user.ErrOAuthAccountNotLinked):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrTeacherAccessRequired),
		errors.Is(err, user.ErrStudentAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance
	case errors.Is(err, attendance.ErrInvalidScannerKey):
		Unauthorized(w, "Invalid scanner key")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Students
	case errors.Is(err, student.ErrStudentNotFound):
		NotFound(w, "Student not found")
	case errors.Is(err, student.ErrPhotoRequired):
		BadRequest(w, err.Error(), nil)

	// Assignments
	case errors.Is(err, assignment.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, assignment.ErrSubmissionNotFound):
		NotFound(w, "Submission not found")
	case errors.Is(err, assignment.ErrNotAssignmentOwner):
		Forbidden(w, "You can only grade submissions to your own assignments")
	case errors.Is(err, assignment.ErrInvalidAssignmentType), errors.Is(err, assignment.ErrFileRequired):
		BadRequest(w, err.Error(), nil)

	// Journal
	case errors.Is(err, journal.ErrEntryNotFound):
		NotFound(w, "Journal entry not found")

	// Files
	case errors.Is(err, file.ErrInvalidImage), errors.Is(err, file.ErrUnsupportedFile), errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
