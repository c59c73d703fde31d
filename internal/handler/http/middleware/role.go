package middleware

import (
	"fmt"
	"net/http"

	"github.com/rovicpogi/Stoninonew/internal/domain/user"
	"github.com/rovicpogi/Stoninonew/internal/handler/http/response"
	"github.com/rovicpogi/Stoninonew/internal/pkg/session"
)

// RequireRole lets through sessions whose role is one of roles. Teacher and
// student sessions must also carry their profile id.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := session.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			for _, role := range roles {
				if s.Role != role {
					continue
				}
				switch {
				case role == user.RoleTeacher && !s.IsTeacher():
					response.HandleError(w, user.ErrTeacherAccessRequired)
				case role == user.RoleStudent && !s.IsStudent():
					response.HandleError(w, user.ErrStudentAccessRequired)
				default:
					next.ServeHTTP(w, r)
				}
				return
			}

			response.HandleError(w, roleError(roles))
		})
	}
}

func roleError(roles []user.Role) error {
	if len(roles) == 1 {
		switch roles[0] {
		case user.RoleAdmin:
			return user.ErrAdminAccessRequired
		case user.RoleTeacher:
			return user.ErrTeacherAccessRequired
		case user.RoleStudent:
			return user.ErrStudentAccessRequired
		}
	}
	return user.ErrInsufficientPermissions
}

// RequirePermission checks if the session role has a specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := session.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !user.HasPermission(s.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, s.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
