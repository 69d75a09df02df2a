package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/ao3doc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ao3doc.WorkService = (*WorkService)(nil)

// WorkService implements ao3doc.WorkService using SQLite.
// The full work is stored as JSON next to the columns used for listing.
type WorkService struct {
	db  *DB
	now func() time.Time
}

// NewWorkService creates a new WorkService.
func NewWorkService(db *DB) *WorkService {
	return &WorkService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SaveWork stores a work, replacing any stored copy with the same ID.
// The row ID of an existing copy is kept.
func (s *WorkService) SaveWork(ctx context.Context, work *ao3doc.Work) error {
	if err := work.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(work)
	if err != nil {
		return fmt.Errorf("failed to encode work: %w", err)
	}
	body, err := json.Marshal(work.Body)
	if err != nil {
		return fmt.Errorf("failed to encode work body: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO works (id, work_id, title, author, words, content_hash, data, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(work_id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			words = excluded.words,
			content_hash = excluded.content_hash,
			data = excluded.data,
			fetched_at = excluded.fetched_at
	`, uuid.New().String(), work.ID, work.Title, work.Author, work.Words,
		contentHash(body), string(data), s.now().Format(time.RFC3339))

	return err
}

// FindWorkByID retrieves a stored work by its archive ID.
func (s *WorkService) FindWorkByID(ctx context.Context, id string) (*ao3doc.Work, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM works WHERE work_id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ao3doc.Errorf(ao3doc.ENOTFOUND, "work %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	var work ao3doc.Work
	if err := json.Unmarshal([]byte(data), &work); err != nil {
		return nil, fmt.Errorf("failed to decode work %s: %w", id, err)
	}
	return &work, nil
}

// FindWorks retrieves stored work records matching the filter,
// most recently fetched first.
func (s *WorkService) FindWorks(ctx context.Context, filter ao3doc.WorkFilter) ([]*ao3doc.WorkRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, work_id, title, author, words, content_hash, fetched_at FROM works WHERE 1=1")

	if filter.Author != nil {
		query.WriteString(" AND author = ?")
		args = append(args, *filter.Author)
	}

	query.WriteString(" ORDER BY fetched_at DESC, work_id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*ao3doc.WorkRecord
	for rows.Next() {
		var r ao3doc.WorkRecord
		var fetchedAt string
		if err := rows.Scan(&r.ID, &r.WorkID, &r.Title, &r.Author, &r.Words, &r.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}
		if r.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}

	return records, rows.Err()
}

// DeleteWork removes a stored work.
func (s *WorkService) DeleteWork(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM works WHERE work_id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ao3doc.Errorf(ao3doc.ENOTFOUND, "work %q not found", id)
	}

	return nil
}
