// Package worker consumes entry sync messages and mirrors entries into
// the configured sheet. It is the other half of the export pipeline; the
// web process only publishes.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"ore/internal/amqp"
	"ore/internal/core"
	"ore/internal/sheets"
	"ore/internal/storage"
)

// SyncWorker handles export of entries from SQLite to the sheet backend.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.EntryWriter
	deleter   sheets.EntryDeleter
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, writer sheets.EntryWriter, deleter sheets.EntryDeleter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		writer:    writer,
		deleter:   deleter,
		batchSize: batchSize,
	}
}

// HandleMessage dispatches one AMQP message to the matching handler.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.EntrySyncMessage) error {
	switch msg.Action {
	case amqp.ActionUpsert:
		return w.handleSync(ctx, msg)
	case amqp.ActionDelete:
		return w.handleDelete(ctx, msg)
	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
}

func (w *SyncWorker) handleSync(ctx context.Context, msg *amqp.EntrySyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	entry, err := w.storage.GetEntry(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get entry from storage: %w", err)
	}

	return w.exportEntry(ctx, msg.ID, entry)
}

func (w *SyncWorker) handleDelete(ctx context.Context, msg *amqp.EntrySyncMessage) error {
	slog.InfoContext(ctx, "Processing delete message", "id", msg.ID)

	if w.deleter == nil {
		slog.WarnContext(ctx, "No entry deleter configured, skipping sheet deletion",
			"id", msg.ID)
		return nil
	}

	if err := w.deleter.Delete(ctx, msg.ID); err != nil {
		return fmt.Errorf("delete entry from sheet: %w", err)
	}

	slog.InfoContext(ctx, "Deleted entry from sheet", "id", msg.ID)
	return nil
}

// StartupSyncCheck exports any entries left pending while the worker was
// down or AMQP messages were lost.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncEntries(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending entries for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending entries found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending entries on startup, processing",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, item := range pending {
		entry, err := w.storage.GetEntry(ctx, item.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get entry for startup sync",
				"id", item.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, item.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", item.ID, "error", err)
			}
			errorCount++
			continue
		}

		if err := w.exportEntry(ctx, item.ID, entry); err != nil {
			slog.ErrorContext(ctx, "Failed to sync entry during startup",
				"id", item.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) exportEntry(ctx context.Context, id int64, entry core.Entry) error {
	ref, err := w.writer.Append(ctx, id, entry)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
		// The export itself succeeded.
	}

	slog.InfoContext(ctx, "Synced entry",
		"id", id,
		"sheet_ref", ref,
		"person", entry.Person.Slug,
		"project", entry.Project.Slug)

	return nil
}
