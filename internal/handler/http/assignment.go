package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rovicpogi/Stoninonew/internal/domain/assignment"
	"github.com/rovicpogi/Stoninonew/internal/domain/student"
	"github.com/rovicpogi/Stoninonew/internal/handler/http/response"
	"github.com/rovicpogi/Stoninonew/internal/pkg/session"
)

type AssignmentHandler interface {
	// Teacher
	ListTeacherAssignments(w http.ResponseWriter, r *http.Request)
	CreateAssignment(w http.ResponseWriter, r *http.Request)
	ListTeacherSubmissions(w http.ResponseWriter, r *http.Request)
	GradeSubmission(w http.ResponseWriter, r *http.Request)

	// Student
	ListStudentAssignments(w http.ResponseWriter, r *http.Request)
	ListStudentSubmissions(w http.ResponseWriter, r *http.Request)
	SubmitAssignment(w http.ResponseWriter, r *http.Request)
}

type assignmentHandlerImpl struct {
	assignmentService assignment.AssignmentService
	studentService    student.StudentService
}

func NewAssignmentHandler(assignmentService assignment.AssignmentService, studentService student.StudentService) AssignmentHandler {
	return &assignmentHandlerImpl{
		assignmentService: assignmentService,
		studentService:    studentService,
	}
}

// parseUpload parses a multipart body capped at MaxFileSize plus room for the text fields.
func parseUpload(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, assignment.MaxFileSize+(1<<20))
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form or file too large", nil)
		return false
	}
	return true
}

// ========================================
// TEACHER
// ========================================

// ListTeacherAssignments handles GET /teacher/assignments?type=
func (h *assignmentHandlerImpl) ListTeacherAssignments(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.assignmentService.ListTeacherAssignments(r.Context(), s.TeacherID, assignment.AssignmentFilter{
		Type: r.URL.Query().Get("type"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// CreateAssignment handles POST /teacher/assignments (multipart)
func (h *assignmentHandlerImpl) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !parseUpload(w, r) {
		return
	}

	req := assignment.CreateAssignmentRequest{
		TeacherID:   s.TeacherID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
		Subject:     r.FormValue("subject"),
		GradeLevel:  r.FormValue("grade_level"),
		Section:     r.FormValue("section"),
		DueDate:     r.FormValue("due_date"),
	}
	if file, fileHeader, err := r.FormFile("file"); err == nil {
		defer file.Close()
		req.File, req.FileHeader = file, fileHeader
	}

	result, err := h.assignmentService.CreateAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Assignment created", "assignment_id", result.ID, "teacher_id", s.TeacherID, "type", result.Type)
	response.Created(w, "Assignment created successfully", result)
}

// ListTeacherSubmissions handles GET /teacher/submissions?assignment_id=
func (h *assignmentHandlerImpl) ListTeacherSubmissions(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.assignmentService.ListTeacherSubmissions(r.Context(), s.TeacherID, assignment.SubmissionFilter{
		AssignmentID: r.URL.Query().Get("assignment_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GradeSubmission handles PUT /teacher/submissions/{id}/grade
func (h *assignmentHandlerImpl) GradeSubmission(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req assignment.GradeSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.SubmissionID = chi.URLParam(r, "id")
	req.TeacherID = s.TeacherID

	result, err := h.assignmentService.GradeSubmission(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Submission graded", result)
}

// ========================================
// STUDENT
// ========================================

// ListStudentAssignments handles GET /student/assignments?grade_level=&section=&type=
// Grade level and section default to the student's own class.
func (h *assignmentHandlerImpl) ListStudentAssignments(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	filter := assignment.AssignmentFilter{
		Type:       query.Get("type"),
		GradeLevel: query.Get("grade_level"),
		Section:    query.Get("section"),
	}
	if filter.GradeLevel == "" || filter.Section == "" {
		profile, err := h.studentService.GetByID(r.Context(), s.StudentID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if filter.GradeLevel == "" {
			filter.GradeLevel = profile.GradeLevel
		}
		if filter.Section == "" {
			filter.Section = profile.Section
		}
	}

	result, err := h.assignmentService.ListStudentAssignments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListStudentSubmissions handles GET /student/submissions?assignment_id=
func (h *assignmentHandlerImpl) ListStudentSubmissions(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.assignmentService.ListStudentSubmissions(r.Context(), s.StudentID, assignment.SubmissionFilter{
		AssignmentID: r.URL.Query().Get("assignment_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// SubmitAssignment handles POST /student/submissions (multipart)
func (h *assignmentHandlerImpl) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !parseUpload(w, r) {
		return
	}

	req := assignment.SubmitAssignmentRequest{
		AssignmentID: r.FormValue("assignment_id"),
		StudentID:    s.StudentID,
	}
	if file, fileHeader, err := r.FormFile("file"); err == nil {
		defer file.Close()
		req.File, req.FileHeader = file, fileHeader
	}

	result, err := h.assignmentService.SubmitAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Resubmitted {
		response.SuccessWithMessage(w, "Submission updated successfully", result.Submission)
		return
	}
	response.Created(w, "Assignment submitted successfully", result.Submission)
}
