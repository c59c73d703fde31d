package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rovicpogi/Stoninonew/internal/domain/journal"
	"github.com/rovicpogi/Stoninonew/internal/pkg/database"
)

type journalRepositoryImpl struct {
	db *database.DB
}

func NewJournalRepository(db *database.DB) journal.JournalRepository {
	return &journalRepositoryImpl{db: db}
}

const journalColumns = `id, teacher_id, entry_date, subject, topic, activities, notes, created_at`

func scanEntry(row pgx.Row) (journal.Entry, error) {
	var e journal.Entry
	err := row.Scan(&e.ID, &e.TeacherID, &e.EntryDate, &e.Subject, &e.Topic, &e.Activities, &e.Notes, &e.CreatedAt)
	return e, err
}

// Create implements journal.JournalRepository.
func (r *journalRepositoryImpl) Create(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO journal_entries (teacher_id, entry_date, subject, topic, activities, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + journalColumns

	created, err := scanEntry(q.QueryRow(ctx, query, e.TeacherID, e.EntryDate, e.Subject, e.Topic, e.Activities, e.Notes))
	if err != nil {
		return journal.Entry{}, fmt.Errorf("failed to create journal entry: %w", err)
	}
	return created, nil
}

// ListByTeacher implements journal.JournalRepository.
func (r *journalRepositoryImpl) ListByTeacher(ctx context.Context, teacherID string) ([]journal.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE teacher_id = $1
		ORDER BY entry_date DESC, created_at DESC`

	rows, err := q.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]journal.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete implements journal.JournalRepository.
func (r *journalRepositoryImpl) Delete(ctx context.Context, id, teacherID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return journal.ErrEntryNotFound
	}
	return nil
}

// CountByTeacher implements journal.JournalRepository.
func (r *journalRepositoryImpl) CountByTeacher(ctx context.Context, teacherID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE teacher_id = $1`, teacherID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return count, nil
}
