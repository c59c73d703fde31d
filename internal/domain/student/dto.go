package student

import (
	"mime/multipart"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/pkg/validator"
)

const MaxPhotoSize = 10 << 20

type StudentFilter struct {
	GradeLevel string
	Section    string
	Search     string
}

type UploadPhotoRequest struct {
	StudentID  string                `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadPhotoRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.StudentID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if r.FileHeader == nil || r.File == nil {
		errs.Add("file", "photo file is required")
	} else if !validator.HasExtension(r.FileHeader.Filename, ".jpg", ".jpeg", ".png") {
		errs.Add("file", "invalid file type: only jpg, jpeg, png allowed")
	} else if r.FileHeader.Size > MaxPhotoSize {
		errs.Add("file", "photo size must not exceed 10MB")
	}

	return errs.OrNil()
}

type StudentResponse struct {
	ID            string    `json:"id"`
	StudentNumber string    `json:"student_number"`
	FullName      string    `json:"full_name"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	GradeLevel    string    `json:"grade_level"`
	Section       string    `json:"section"`
	RFIDCard      *string   `json:"rfid_card"`
	PhotoURL      *string   `json:"photo_url"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewStudentResponse(s Student) StudentResponse {
	return StudentResponse{
		ID:            s.ID,
		StudentNumber: s.StudentNumber,
		FullName:      s.FullName(),
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		GradeLevel:    s.GradeLevel,
		Section:       s.Section,
		RFIDCard:      s.RFIDCard,
		PhotoURL:      s.PhotoURL,
		CreatedAt:     s.CreatedAt,
	}
}
