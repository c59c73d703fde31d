package journal

import (
	"context"
	"fmt"

	"github.com/rovicpogi/Stoninonew/internal/domain/journal"
	"github.com/rovicpogi/Stoninonew/internal/pkg/validator"
)

type JournalServiceImpl struct {
	journal.JournalRepository
}

func NewJournalService(journalRepository journal.JournalRepository) journal.JournalService {
	return &JournalServiceImpl{JournalRepository: journalRepository}
}

// List implements journal.JournalService.
func (s *JournalServiceImpl) List(ctx context.Context, teacherID string) ([]journal.EntryResponse, error) {
	entries, err := s.JournalRepository.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	responses := make([]journal.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, journal.NewEntryResponse(e))
	}
	return responses, nil
}

// Create implements journal.JournalService.
func (s *JournalServiceImpl) Create(ctx context.Context, req journal.CreateEntryRequest) (journal.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return journal.EntryResponse{}, err
	}

	entry := journal.Entry{
		TeacherID: req.TeacherID,
		EntryDate: req.EntryDate(),
		Subject:   req.Subject,
		Topic:     req.Topic,
	}
	if req.Activities != "" {
		entry.Activities = &req.Activities
	}
	if req.Notes != "" {
		entry.Notes = &req.Notes
	}

	created, err := s.JournalRepository.Create(ctx, entry)
	if err != nil {
		return journal.EntryResponse{}, err
	}
	return journal.NewEntryResponse(created), nil
}

// Delete implements journal.JournalService.
func (s *JournalServiceImpl) Delete(ctx context.Context, id, teacherID string) error {
	if !validator.IsValidUUID(id) {
		return journal.ErrEntryNotFound
	}
	return s.JournalRepository.Delete(ctx, id, teacherID)
}
