package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rovicpogi/Stoninonew/internal/domain/assignment"
	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/domain/auth"
	"github.com/rovicpogi/Stoninonew/internal/domain/journal"
	"github.com/rovicpogi/Stoninonew/internal/domain/user"
	"github.com/rovicpogi/Stoninonew/internal/pkg/session"
	"github.com/rovicpogi/Stoninonew/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{session.ErrNoSession, http.StatusUnauthorized},
		{user.ErrAdminAccessRequired, http.StatusForbidden},
		{fmt.Errorf("grading: %w", assignment.ErrNotAssignmentOwner), http.StatusForbidden},
		{assignment.ErrAssignmentNotFound, http.StatusNotFound},
		{journal.ErrEntryNotFound, http.StatusNotFound},
		{attendance.ErrInvalidScannerKey, http.StatusUnauthorized},
		{assignment.ErrFileRequired, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		HandleError(w, c.err)
		assert.Equal(t, c.want, w.Code, c.err.Error())
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Required("title", "")
	w := httptest.NewRecorder()

	HandleError(w, fmt.Errorf("create: %w", errs))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "title is required", resp.Error.Details["title"])
}

func TestLiveFeed_Shape(t *testing.T) {
	w := httptest.NewRecorder()
	LiveFeed(w, nil)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"records":[],"count":0}`, w.Body.String())

	w = httptest.NewRecorder()
	LiveFeedError(w, http.StatusInternalServerError, "Failed to fetch attendance records")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"records":[],"count":0,"error":"Failed to fetch attendance records"}`, w.Body.String())
}
