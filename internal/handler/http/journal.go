package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rovicpogi/Stoninonew/internal/domain/journal"
	"github.com/rovicpogi/Stoninonew/internal/handler/http/response"
	"github.com/rovicpogi/Stoninonew/internal/pkg/session"
)

type JournalHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type journalHandlerImpl struct {
	journalService journal.JournalService
}

func NewJournalHandler(journalService journal.JournalService) JournalHandler {
	return &journalHandlerImpl{journalService: journalService}
}

// List handles GET /teacher/journal
func (h *journalHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.journalService.List(r.Context(), s.TeacherID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

// Create handles POST /teacher/journal
func (h *journalHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req journal.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TeacherID = s.TeacherID

	entry, err := h.journalService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Journal entry saved", entry)
}

// Delete handles DELETE /teacher/journal/{id}
func (h *journalHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.journalService.Delete(r.Context(), chi.URLParam(r, "id"), s.TeacherID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Journal entry deleted", nil)
}
