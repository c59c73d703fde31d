package student

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rovicpogi/Stoninonew/internal/domain/student"
	"github.com/rovicpogi/Stoninonew/internal/service/file"
)

type StudentServiceImpl struct {
	student.StudentRepository
	fileService file.FileService
}

func NewStudentService(studentRepository student.StudentRepository, fileService file.FileService) student.StudentService {
	return &StudentServiceImpl{
		StudentRepository: studentRepository,
		fileService:       fileService,
	}
}

// List implements student.StudentService.
func (s *StudentServiceImpl) List(ctx context.Context, filter student.StudentFilter) ([]student.StudentResponse, error) {
	students, err := s.StudentRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	responses := make([]student.StudentResponse, 0, len(students))
	for _, st := range students {
		responses = append(responses, student.NewStudentResponse(st))
	}
	return responses, nil
}

// GetByID implements student.StudentService.
func (s *StudentServiceImpl) GetByID(ctx context.Context, id string) (student.StudentResponse, error) {
	st, err := s.StudentRepository.GetByID(ctx, id)
	if err != nil {
		return student.StudentResponse{}, err
	}
	return student.NewStudentResponse(st), nil
}

// UploadPhoto implements student.StudentService.
func (s *StudentServiceImpl) UploadPhoto(ctx context.Context, req student.UploadPhotoRequest) (student.StudentResponse, error) {
	if err := req.Validate(); err != nil {
		return student.StudentResponse{}, err
	}

	existing, err := s.StudentRepository.GetByID(ctx, req.StudentID)
	if err != nil {
		return student.StudentResponse{}, err
	}

	path, err := s.fileService.UploadStudentPhoto(ctx, existing.ID, req.File, req.FileHeader.Filename)
	if err != nil {
		return student.StudentResponse{}, err
	}

	photoURL := s.fileService.FileURL(path)
	if err := s.StudentRepository.UpdatePhotoURL(ctx, existing.ID, photoURL); err != nil {
		if delErr := s.fileService.DeleteFile(ctx, path); delErr != nil {
			slog.Error("failed to clean up uploaded photo", "path", path, "error", delErr)
		}
		return student.StudentResponse{}, fmt.Errorf("failed to save photo url: %w", err)
	}

	if existing.PhotoURL != nil {
		if oldPath, ok := s.fileService.PathFromURL(*existing.PhotoURL); ok {
			if err := s.fileService.DeleteFile(ctx, oldPath); err != nil {
				slog.Warn("failed to delete previous photo", "path", oldPath, "error", err)
			}
		}
	}

	existing.PhotoURL = &photoURL
	return student.NewStudentResponse(existing), nil
}
