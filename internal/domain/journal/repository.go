package journal

import "context"

type JournalRepository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	// ListByTeacher returns entries newest first (by date, then creation).
	ListByTeacher(ctx context.Context, teacherID string) ([]Entry, error)
	// Delete removes an entry owned by teacherID; ErrEntryNotFound otherwise.
	Delete(ctx context.Context, id, teacherID string) error
	CountByTeacher(ctx context.Context, teacherID string) (int64, error)
}
