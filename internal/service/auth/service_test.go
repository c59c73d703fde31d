package auth

import (
	"context"
	"testing"

	"github.com/rovicpogi/Stoninonew/internal/domain/auth"
	"github.com/rovicpogi/Stoninonew/internal/domain/user"
	"github.com/rovicpogi/Stoninonew/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type fakeUsers struct {
	byEmail map[string]user.User
	linked  map[string]string
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUsers) LinkGoogleAccount(_ context.Context, userID string, googleID string) error {
	if f.linked == nil {
		f.linked = map[string]string{}
	}
	f.linked[userID] = googleID
	return nil
}

func (f *fakeUsers) CountByRole(context.Context, user.Role) (int64, error) { return 0, nil }

type storedToken struct {
	userID  string
	revoked bool
}

type fakeTokens struct {
	tokens map[string]*storedToken
}

func (f *fakeTokens) CreateRefreshToken(_ context.Context, userID string, token string, _ int64, _ auth.SessionTrackingRequest) error {
	f.tokens[token] = &storedToken{userID: userID}
	return nil
}

func (f *fakeTokens) LookupRefreshToken(_ context.Context, token string) (string, bool, error) {
	st, ok := f.tokens[token]
	if !ok {
		return "", true, auth.ErrInvalidToken
	}
	return st.userID, st.revoked, nil
}

func (f *fakeTokens) RevokeRefreshToken(_ context.Context, token string) error {
	if st, ok := f.tokens[token]; ok {
		st.revoked = true
	}
	return nil
}

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) (*AuthServiceImpl, *fakeUsers, *fakeTokens) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUsers{byEmail: map[string]user.User{
		"teacher@stonino.edu.ph": {
			ID:           "u-1",
			Email:        "teacher@stonino.edu.ph",
			FullName:     "Maria Santos",
			PasswordHash: strPtr(string(hash)),
			Role:         user.RoleTeacher,
			TeacherID:    strPtr("t-1"),
		},
		"student@stonino.edu.ph": {
			ID:        "u-2",
			Email:     "student@stonino.edu.ph",
			Role:      user.RoleStudent,
			StudentID: strPtr("s-1"),
		},
	}}
	tokens := &fakeTokens{tokens: map[string]*storedToken{}}

	svc := &AuthServiceImpl{
		UserRepository:  users,
		TokenRepository: tokens,
		Service:         jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp),
		withTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
	return svc, users, tokens
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, tokens := newTestService(t)

	resp, err := svc.Login(context.Background(),
		auth.LoginRequest{Email: "teacher@stonino.edu.ph", Password: "password123"},
		auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)
	assert.Equal(t, "Maria Santos", resp.Profile.FullName)
	assert.Equal(t, "t-1", *resp.Profile.TeacherID)
	assert.Contains(t, tokens.tokens, resp.RefreshToken)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "teacher@stonino.edu.ph", Password: "wrong"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "nobody@stonino.edu.ph", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// no password set
	_, err = svc.Login(ctx, auth.LoginRequest{Email: "student@stonino.edu.ph", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.LoginWithGoogle(ctx, "student@stonino.edu.ph", "google-123", auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "google-123", users.linked["u-2"])

	_, err = svc.LoginWithGoogle(ctx, "stranger@gmail.com", "google-999", auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, user.ErrOAuthAccountNotLinked)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "teacher@stonino.edu.ph", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))
	_, err = svc.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	// second logout is a no-op
	assert.NoError(t, svc.Logout(ctx, resp.RefreshToken))
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// well-formed but never stored
	token, _, err := svc.Service.GenerateRefreshToken("u-1")
	require.NoError(t, err)
	_, err = svc.RefreshToken(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
