package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rovicpogi/Stoninonew/internal/domain/auth"
	"github.com/rovicpogi/Stoninonew/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginBody(email, password string) *bytes.Reader {
	body, _ := json.Marshal(auth.LoginRequest{Email: email, Password: password})
	return bytes.NewReader(body)
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == refreshTokenCookieName {
			return cookie
		}
	}
	return nil
}

// Test Login - Success
func TestAuthHandler_Login_Success(t *testing.T) {
	env := newTestEnv(t)
	env.auth.login = func(req auth.LoginRequest) (auth.TokenResponse, error) {
		return auth.TokenResponse{
			AccessToken:           "access",
			RefreshToken:          "refresh",
			RefreshTokenExpiresIn: 4102444800,
			Profile:               auth.ProfileInfo{UserID: "u-1", Email: req.Email, Role: string(user.RoleTeacher)},
		}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", loginBody("teacher@stonino.edu.ph", "password123"))
	w := env.do(req, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	cookie := refreshCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "refresh", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	resp := decodeBody(t, w)
	assert.True(t, resp["success"].(bool))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "access", data["access_token"])
	assert.Equal(t, "teacher", data["profile"].(map[string]interface{})["role"])
}

// Test Login - Invalid JSON
func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("invalid json")))
	w := env.do(req, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Test Login - Validation
func TestAuthHandler_Login_Validation(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", loginBody("not-an-email", ""))
	w := env.do(req, "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := decodeBody(t, w)["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
}

// Test Login - Invalid Credentials
func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.auth.login = func(auth.LoginRequest) (auth.TokenResponse, error) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", loginBody("teacher@stonino.edu.ph", "wrong"))
	w := env.do(req, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, refreshCookie(w))
	assert.False(t, decodeBody(t, w)["success"].(bool))
}

// Test RefreshToken - Missing Cookie
func TestAuthHandler_RefreshToken_MissingCookie(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Test RefreshToken - Success
func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	env := newTestEnv(t)
	env.auth.refresh = func(token string) (auth.AccessTokenResponse, error) {
		assert.Equal(t, "refresh", token)
		return auth.AccessTokenResponse{AccessToken: "fresh"}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookieName, Value: "refresh"})
	w := env.do(req, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fresh", decodeBody(t, w)["data"].(map[string]interface{})["access_token"])
}

// Test RefreshToken - Revoked
func TestAuthHandler_RefreshToken_Revoked(t *testing.T) {
	env := newTestEnv(t)
	env.auth.refresh = func(string) (auth.AccessTokenResponse, error) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookieName, Value: "old"})
	w := env.do(req, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Test Logout - revokes both tokens
func TestAuthHandler_Logout_RevokesAccessToken(t *testing.T) {
	env := newTestEnv(t)
	access := env.token(t, user.RoleAdmin)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil), access)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookieName, Value: "refresh"})
	w = env.do(req, access)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"refresh"}, env.auth.loggedOut)
	cleared := refreshCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil), access)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Test Logout - Missing Cookie
func TestAuthHandler_Logout_MissingCookie(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, env.auth.loggedOut)
}

// Test Me - profile comes from the token
func TestAuthHandler_Me(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil), env.token(t, user.RoleStudent))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "student", data["role"])
	assert.Equal(t, "s-1", data["student_id"])
	assert.NotContains(t, data, "teacher_id")
}

// Test Me - refresh tokens are not access tokens
func TestAuthHandler_Me_RejectsRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	refresh, _, err := env.jwt.GenerateRefreshToken("u-1")
	require.NoError(t, err)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil), refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
