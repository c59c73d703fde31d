package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Fetch(t *testing.T) {
	since := time.Date(2025, 6, 2, 12, 0, 3, 123456000, time.FixedZone("PHT", 8*3600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, LiveFeedPath, r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		got, err := time.Parse(time.RFC3339Nano, r.URL.Query().Get("since"))
		assert.NoError(t, err)
		assert.True(t, got.Equal(since))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(attendance.LiveFeedResponse{
			Success: true,
			Records: []attendance.LiveRecord{rec("r4", 5)},
			Count:   1,
		})
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", StaticToken("token-1"), srv.Client())
	records, err := src.Fetch(context.Background(), Query{Limit: 500, Since: &since})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r4", records[0].ID)
	assert.True(t, records[0].ScanTime.Equal(at(5)))
}

func TestHTTPSource_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(attendance.LiveFeedResponse{
			Success: false,
			Records: []attendance.LiveRecord{},
			Error:   "Failed to fetch attendance records",
		})
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, nil, srv.Client()).Fetch(context.Background(), Query{Limit: 50})
	require.ErrorIs(t, err, ErrFeedUnavailable)
	assert.Contains(t, err.Error(), "Failed to fetch attendance records")
}

func TestHTTPSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(url, nil, nil).Fetch(context.Background(), Query{Limit: 50})
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestHTTPSource_NonJSONErrorKeepsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, nil, srv.Client()).Fetch(context.Background(), Query{Limit: 50})
	require.ErrorIs(t, err, ErrFeedUnavailable)
	assert.Contains(t, err.Error(), "status 502")
	assert.NotContains(t, err.Error(), "decode")
}

func TestHTTPSource_StaticTokenRejected(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Unauthorized\n"))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, StaticToken("expired"), srv.Client()).Fetch(context.Background(), Query{Limit: 50})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrFeedUnavailable)
	assert.EqualValues(t, 1, calls.Load())
}

// feedServer serves the login endpoint and a feed that only accepts the
// most recently issued token.
func feedServer(t *testing.T, password string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var logins atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case LoginPath:
			var req auth.LoginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != password {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UNAUTHORIZED","message":"invalid email or password"}}`))
				return
			}
			n := logins.Add(1)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    auth.TokenResponse{AccessToken: fmt.Sprintf("token-%d", n)},
			})
		case LiveFeedPath:
			if r.Header.Get("Authorization") != fmt.Sprintf("Bearer token-%d", logins.Load()) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(attendance.LiveFeedResponse{
				Success: true,
				Records: []attendance.LiveRecord{rec("r1", 1)},
				Count:   1,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &logins
}

func TestHTTPSource_RenewsExpiredLogin(t *testing.T) {
	srv, logins := feedServer(t, "secret")
	creds := NewPasswordLogin(srv.URL, "admin@stonino.edu.ph", "secret", srv.Client())
	src := NewHTTPSource(srv.URL, creds, srv.Client())

	records, err := src.Fetch(context.Background(), Query{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.EqualValues(t, 1, logins.Load())

	// a login elsewhere invalidates the cached token, as expiry would
	_, err = NewPasswordLogin(srv.URL, "admin@stonino.edu.ph", "secret", srv.Client()).Token(context.Background())
	require.NoError(t, err)

	records, err = src.Fetch(context.Background(), Query{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.EqualValues(t, 3, logins.Load())

	token, err := creds.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-3", token)
}

func TestHTTPSource_BadPassword(t *testing.T) {
	srv, _ := feedServer(t, "secret")
	creds := NewPasswordLogin(srv.URL, "admin@stonino.edu.ph", "wrong", srv.Client())

	_, err := NewHTTPSource(srv.URL, creds, srv.Client()).Fetch(context.Background(), Query{Limit: 50})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid email or password")
}
