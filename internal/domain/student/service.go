package student

import "context"

type StudentService interface {
	List(ctx context.Context, filter StudentFilter) ([]StudentResponse, error)
	GetByID(ctx context.Context, id string) (StudentResponse, error)
	// UploadPhoto stores a resized photo and replaces the student's previous one.
	UploadPhoto(ctx context.Context, req UploadPhotoRequest) (StudentResponse, error)
}
