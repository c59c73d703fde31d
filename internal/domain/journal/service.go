package journal

import "context"

type JournalService interface {
	List(ctx context.Context, teacherID string) ([]EntryResponse, error)
	Create(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)
	Delete(ctx context.Context, id, teacherID string) error
}
