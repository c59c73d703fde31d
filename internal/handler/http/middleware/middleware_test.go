package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rovicpogi/Stoninonew/internal/domain/user"
	"github.com/rovicpogi/Stoninonew/internal/pkg/session"
	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func withSession(s session.Session) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(session.NewContext(req.Context(), s))
}

func serve(h http.Handler, req *http.Request) int {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestScannerKey(t *testing.T) {
	h := ScannerKey("gate-key")(ok)

	req := httptest.NewRequest(http.MethodPost, "/scans", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(h, req))

	req.Header.Set(ScannerKeyHeader, "gate-key")
	assert.Equal(t, http.StatusNoContent, serve(h, req))
}

func TestScannerKey_EmptyKeyRejectsEverything(t *testing.T) {
	h := ScannerKey("")(ok)
	req := httptest.NewRequest(http.MethodPost, "/scans", nil)
	req.Header.Set(ScannerKeyHeader, "")
	assert.Equal(t, http.StatusUnauthorized, serve(h, req))
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name  string
		roles []user.Role
		s     session.Session
		want  int
	}{
		{"admin allowed", []user.Role{user.RoleAdmin}, session.Session{Role: user.RoleAdmin}, http.StatusNoContent},
		{"teacher on admin route", []user.Role{user.RoleAdmin}, session.Session{Role: user.RoleTeacher, TeacherID: "t-1"}, http.StatusForbidden},
		{"teacher without profile", []user.Role{user.RoleTeacher}, session.Session{Role: user.RoleTeacher}, http.StatusForbidden},
		{"student with profile", []user.Role{user.RoleStudent}, session.Session{Role: user.RoleStudent, StudentID: "s-1"}, http.StatusNoContent},
		{"either role", []user.Role{user.RoleAdmin, user.RoleTeacher}, session.Session{Role: user.RoleTeacher, TeacherID: "t-1"}, http.StatusNoContent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, serve(RequireRole(c.roles...)(ok), withSession(c.s)))
		})
	}
}

func TestRequireRole_NoSession(t *testing.T) {
	h := RequireRole(user.RoleAdmin)(ok)
	assert.Equal(t, http.StatusUnauthorized, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestRequirePermission(t *testing.T) {
	h := RequirePermission(user.PermissionSubmissionGrade)(ok)
	assert.Equal(t, http.StatusNoContent, serve(h, withSession(session.Session{Role: user.RoleTeacher, TeacherID: "t-1"})))
	assert.Equal(t, http.StatusForbidden, serve(h, withSession(session.Session{Role: user.RoleStudent, StudentID: "s-1"})))
}
