// Package session carries the authenticated portal user through a request.
//
// The browser used to keep admin/teacher/student profiles in local storage
// and every screen read them from there. Here the profile is derived from the
// verified access token once per request and passed along explicitly in the
// context; logging out revokes the refresh token so no new session can be
// loaded from it.
package session

import (
	"context"
	"errors"

	"github.com/rovicpogi/Stoninonew/internal/domain/user"
)

var ErrNoSession = errors.New("session: no authenticated user")

type Session struct {
	UserID    string
	Email     string
	Role      user.Role
	StudentID string
	TeacherID string
}

func (s Session) IsAdmin() bool   { return s.Role == user.RoleAdmin }
func (s Session) IsTeacher() bool { return s.Role == user.RoleTeacher && s.TeacherID != "" }
func (s Session) IsStudent() bool { return s.Role == user.RoleStudent && s.StudentID != "" }

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by NewContext.
func FromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || s.UserID == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}

// FromClaims builds a session from access token claims.
func FromClaims(claims map[string]interface{}) (Session, error) {
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Session{}, ErrNoSession
	}
	role, _ := claims["role"].(string)
	if !user.Role(role).Valid() {
		return Session{}, user.ErrInvalidRole
	}
	s := Session{
		UserID: userID,
		Role:   user.Role(role),
	}
	s.Email, _ = claims["email"].(string)
	s.StudentID, _ = claims["student_id"].(string)
	s.TeacherID, _ = claims["teacher_id"].(string)
	return s, nil
}
