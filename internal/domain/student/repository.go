package student

import "context"

type StudentRepository interface {
	GetByID(ctx context.Context, id string) (Student, error)
	// GetByRFIDCard returns ErrStudentNotFound for unassigned cards.
	GetByRFIDCard(ctx context.Context, card string) (Student, error)
	List(ctx context.Context, filter StudentFilter) ([]Student, error)
	Count(ctx context.Context) (int64, error)
	// CountInClasses counts students enrolled in any of the given classes.
	CountInClasses(ctx context.Context, classes []Class) (int64, error)
	UpdatePhotoURL(ctx context.Context, id string, photoURL string) error
}
