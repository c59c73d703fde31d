package journal

import (
	"context"
	"testing"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJournalRepo struct {
	entries []journal.Entry
}

func (f *fakeJournalRepo) Create(_ context.Context, e journal.Entry) (journal.Entry, error) {
	e.ID = "0190a1b2-0000-7000-8000-00000000000a"
	e.CreatedAt = time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeJournalRepo) ListByTeacher(_ context.Context, teacherID string) ([]journal.Entry, error) {
	var out []journal.Entry
	for _, e := range f.entries {
		if e.TeacherID == teacherID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeJournalRepo) Delete(_ context.Context, id, teacherID string) error {
	for i, e := range f.entries {
		if e.ID == id && e.TeacherID == teacherID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return journal.ErrEntryNotFound
}

func (f *fakeJournalRepo) CountByTeacher(context.Context, string) (int64, error) {
	return int64(len(f.entries)), nil
}

func TestJournalService_CreateListDelete(t *testing.T) {
	repo := &fakeJournalRepo{}
	svc := NewJournalService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, journal.CreateEntryRequest{
		TeacherID: "t-1",
		Date:      "2025-06-02",
		Subject:   "Science",
		Topic:     "Photosynthesis",
		Notes:     "Lab next week",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", created.Date)
	assert.Nil(t, created.Activities)
	require.NotNil(t, created.Notes)

	list, err := svc.List(ctx, "t-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	others, err := svc.List(ctx, "t-2")
	require.NoError(t, err)
	assert.NotNil(t, others)
	assert.Empty(t, others)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID, "t-2"), journal.ErrEntryNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "not-a-uuid", "t-1"), journal.ErrEntryNotFound)
	require.NoError(t, svc.Delete(ctx, created.ID, "t-1"))
	assert.Empty(t, repo.entries)
}

func TestJournalService_CreateInvalid(t *testing.T) {
	repo := &fakeJournalRepo{}
	svc := NewJournalService(repo)

	_, err := svc.Create(context.Background(), journal.CreateEntryRequest{TeacherID: "t-1", Date: "yesterday"})
	assert.Error(t, err)
	assert.Empty(t, repo.entries)
}
