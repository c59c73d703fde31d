package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/domain/auth"
	"github.com/rovicpogi/Stoninonew/internal/handler/http/response"
	"github.com/rovicpogi/Stoninonew/internal/pkg/jwt"
	"github.com/rovicpogi/Stoninonew/internal/pkg/session"
	"github.com/rovicpogi/Stoninonew/internal/pkg/sse"
	"github.com/rovicpogi/Stoninonew/internal/pkg/validator"
)

const defaultKeepalive = 30 * time.Second

type AttendanceHandler interface {
	// Admin
	LiveFeed(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)

	// Scanner
	RecordScan(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
	hub               *sse.Hub
	keepalive         time.Duration
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service, hub *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
		hub:               hub,
		keepalive:         defaultKeepalive,
	}
}

// LiveFeed serves GET /admin/attendance-live?limit=&since=
func (h *attendanceHandlerImpl) LiveFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := attendance.ParseLiveFilter(query.Get("limit"), query.Get("since"))
	if err != nil {
		response.LiveFeedError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.attendanceService.ListLive(r.Context(), filter)
	if err != nil {
		slog.Error("Live attendance query failed", "error", err)
		response.LiveFeedError(w, http.StatusInternalServerError, attendance.ErrLiveFeedFailed.Error())
		return
	}

	response.LiveFeed(w, records)
}

// GetSSEToken issues a short-lived token for the live stream.
func (h *attendanceHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(s)
	if err != nil {
		slog.Error("Failed to generate SSE token", "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, auth.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes every recorded scan as a "scan" event.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot set headers
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	s, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	if !s.IsAdmin() {
		response.Forbidden(w, "Admin access required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.TopicAttendanceScans)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode SSE event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// RecordScan serves POST /scans from gate readers.
func (h *attendanceHandlerImpl) RecordScan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.RecordScan(r.Context(), req)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			slog.Error("Failed to record scan", "rfid_card", req.RFIDCard, "error", err)
		}
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Scan recorded", record)
}
