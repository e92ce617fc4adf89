package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ore/internal/core"
)

// entryColumns is the joined projection every entry query shares. Entries
// always come back fully resolved so the reporting code never does lookups.
const entryColumns = `
	e.id, e.entry_date, e.hours,
	p.id, p.name, p.slug,
	pr.id, pr.name, pr.slug,
	c.id, c.name, c.slug
	FROM entries e
	JOIN people p ON p.id = e.person_id
	JOIN projects pr ON pr.id = e.project_id
	JOIN clients c ON c.id = pr.client_id`

// PendingSyncEntry is the minimal record queued for export.
type PendingSyncEntry struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

// CreateEntry persists a worked-time fact. Person and Project must carry
// storage IDs (resolved via the directory reads).
func (r *SQLiteRepository) CreateEntry(ctx context.Context, e core.Entry) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, fmt.Errorf("validate entry: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO entries (entry_date, hours, person_id, project_id)
		VALUES (?, ?, ?, ?)`,
		e.Date.ISO(), float64(e.Hours), e.Person.ID, e.Project.ID)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("entry insert id: %w", err)
	}

	slog.InfoContext(ctx, "Entry saved",
		"id", id,
		"date", e.Date.ISO(),
		"hours", float64(e.Hours),
		"person", e.Person.Slug,
		"project", e.Project.Slug)

	return id, nil
}

// GetEntry loads one entry, fully joined.
func (r *SQLiteRepository) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" WHERE e.id = ? AND e.deleted_at IS NULL", id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// SoftDeleteEntry marks an entry deleted and queues it for export removal.
func (r *SQLiteRepository) SoftDeleteEntry(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE entries
		SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}

	slog.InfoContext(ctx, "Entry soft deleted", "id", id)
	return nil
}

// ListEntries implements sheets.EntryLister
func (r *SQLiteRepository) ListEntries(ctx context.Context) ([]core.Entry, error) {
	return r.listEntries(ctx,
		"SELECT "+entryColumns+" WHERE e.deleted_at IS NULL ORDER BY e.entry_date, e.id")
}

// ListEntriesByPerson implements sheets.EntryLister
func (r *SQLiteRepository) ListEntriesByPerson(ctx context.Context, slug string) ([]core.Entry, error) {
	return r.listEntries(ctx,
		"SELECT "+entryColumns+" WHERE e.deleted_at IS NULL AND p.slug = ? ORDER BY e.entry_date, e.id", slug)
}

// ListEntriesByProject implements sheets.EntryLister
func (r *SQLiteRepository) ListEntriesByProject(ctx context.Context, slug string) ([]core.Entry, error) {
	return r.listEntries(ctx,
		"SELECT "+entryColumns+" WHERE e.deleted_at IS NULL AND pr.slug = ? ORDER BY e.entry_date, e.id", slug)
}

// ListEntriesByClient implements sheets.EntryLister
func (r *SQLiteRepository) ListEntriesByClient(ctx context.Context, slug string) ([]core.Entry, error) {
	return r.listEntries(ctx,
		"SELECT "+entryColumns+" WHERE e.deleted_at IS NULL AND c.slug = ? ORDER BY e.entry_date, e.id", slug)
}

func (r *SQLiteRepository) listEntries(ctx context.Context, query string, args ...any) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.Entry, error) {
	var (
		e       core.Entry
		dateStr string
		hours   float64
	)
	err := row.Scan(
		&e.ID, &dateStr, &hours,
		&e.Person.ID, &e.Person.Name, &e.Person.Slug,
		&e.Project.ID, &e.Project.Name, &e.Project.Slug,
		&e.Project.Client.ID, &e.Project.Client.Name, &e.Project.Client.Slug,
	)
	if err != nil {
		return core.Entry{}, err
	}

	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Entry{}, fmt.Errorf("entry %d date %q: %w", e.ID, dateStr, err)
	}
	e.Date = date
	e.Hours = core.Hours(hours)
	return e, nil
}

// GetPendingSyncEntries returns entries awaiting export, oldest first.
func (r *SQLiteRepository) GetPendingSyncEntries(ctx context.Context, limit int) ([]PendingSyncEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, version, created_at
		FROM entries
		WHERE synced = 0 AND sync_error = 0 AND deleted_at IS NULL
		ORDER BY created_at, id
		LIMIT ?`, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending sync entries: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncEntry
	for rows.Next() {
		var p PendingSyncEntry
		if err := rows.Scan(&p.ID, &p.Version, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending entry: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// MarkSynced marks an entry as successfully exported
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE entries SET synced = 1, sync_error = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id); err != nil {
		return fmt.Errorf("mark entry synced: %w", err)
	}
	slog.InfoContext(ctx, "Entry marked as synced", "id", id)
	return nil
}

// MarkSyncError marks an entry as having export errors
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE entries SET sync_error = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id); err != nil {
		return fmt.Errorf("mark entry sync error: %w", err)
	}
	slog.WarnContext(ctx, "Entry marked with sync error", "id", id)
	return nil
}
