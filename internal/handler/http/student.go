package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rovicpogi/Stoninonew/internal/domain/student"
	"github.com/rovicpogi/Stoninonew/internal/handler/http/response"
)

type StudentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UploadPhoto(w http.ResponseWriter, r *http.Request)
}

type studentHandlerImpl struct {
	studentService student.StudentService
}

func NewStudentHandler(studentService student.StudentService) StudentHandler {
	return &studentHandlerImpl{studentService: studentService}
}

// List handles GET /admin/students?grade_level=&section=&search=
func (h *studentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	students, err := h.studentService.List(r.Context(), student.StudentFilter{
		GradeLevel: query.Get("grade_level"),
		Section:    query.Get("section"),
		Search:     query.Get("search"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, students)
}

// UploadPhoto handles PUT /admin/students/{id}/photo (multipart field "photo")
func (h *studentHandlerImpl) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, student.MaxPhotoSize+(1<<20))
	if err := r.ParseMultipartForm(student.MaxPhotoSize); err != nil {
		response.BadRequest(w, "Invalid multipart form or photo too large", nil)
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		response.HandleError(w, student.ErrPhotoRequired)
		return
	}
	defer file.Close()

	result, err := h.studentService.UploadPhoto(r.Context(), student.UploadPhotoRequest{
		StudentID:  id,
		File:       file,
		FileHeader: fileHeader,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Student photo updated", "student_id", id)
	response.SuccessWithMessage(w, "Photo uploaded successfully", result)
}
