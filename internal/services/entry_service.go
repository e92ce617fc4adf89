package services

import (
	"context"
	"fmt"
	"log/slog"

	"ore/internal/amqp"
	"ore/internal/core"
	"ore/internal/log"
	"ore/internal/storage"
)

// EntryService orchestrates entry operations across SQLite and AMQP.
// The local write is the source of truth; the sync message is best effort
// and the sync processor picks up anything the broker missed.
type EntryService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewEntryService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *EntryService {
	return &EntryService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// RecordEntry saves an entry locally and publishes a sync message.
func (s *EntryService) RecordEntry(ctx context.Context, e core.Entry) (int64, error) {
	id, err := s.storage.CreateEntry(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save entry: %w", err)
	}

	// New entries start at version 1.
	if err := s.publishSyncMessage(ctx, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", log.NewFields().
			WithComponent(log.ComponentEntry).
			WithOperation(log.OpSync).
			WithEntry(id, e.Date.ISO(), float64(e.Hours), e.Person.Slug, e.Project.Slug).
			WithError(err).
			ToSlice()...)
		// Don't fail the request, the entry is saved locally.
	}

	return id, nil
}

// DeleteEntry soft deletes an entry locally and publishes a delete message.
func (s *EntryService) DeleteEntry(ctx context.Context, id int64) error {
	if err := s.storage.SoftDeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("soft delete entry: %w", err)
	}

	if err := s.publishDeleteMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
		// Don't fail the request, the entry is deleted locally.
	}

	return nil
}

func (s *EntryService) publishSyncMessage(ctx context.Context, id, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishEntrySync(ctx, id, version)
}

func (s *EntryService) publishDeleteMessage(ctx context.Context, id int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete message")
		return nil
	}
	return s.amqpClient.PublishEntryDelete(ctx, id)
}

// Close closes both storage and AMQP connections.
func (s *EntryService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close entry service: %v", errs)
	}

	return nil
}
