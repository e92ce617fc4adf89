package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ore/internal/sheets"
	"ore/internal/storage"
)

// SyncProcessorConfig holds configuration for the sync processor.
type SyncProcessorConfig struct {
	// PollInterval is how often to check for pending entries.
	PollInterval time.Duration

	// BatchSize is the max number of entries to process per poll cycle.
	BatchSize int
}

// DefaultSyncProcessorConfig returns sensible defaults.
func DefaultSyncProcessorConfig() SyncProcessorConfig {
	return SyncProcessorConfig{
		PollInterval: 30 * time.Second,
		BatchSize:    10,
	}
}

// SyncProcessor is the fallback export path: it polls the database for
// entries the AMQP pipeline has not exported yet and pushes them to the
// sheet directly. With a healthy broker it finds nothing to do.
type SyncProcessor struct {
	storage *storage.SQLiteRepository
	writer  sheets.EntryWriter
	config  SyncProcessorConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewSyncProcessor(storage *storage.SQLiteRepository, writer sheets.EntryWriter, config SyncProcessorConfig) *SyncProcessor {
	return &SyncProcessor{
		storage: storage,
		writer:  writer,
		config:  config,
	}
}

// Start begins the processing loop. Returns an error if already running.
func (p *SyncProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("sync processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Sync processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize)

	return nil
}

// Stop gracefully stops the processor and waits for completion.
func (p *SyncProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Sync processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Sync processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	return nil
}

// IsRunning returns whether the processor is currently running.
func (p *SyncProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *SyncProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	// Process immediately on startup.
	p.ProcessBatch(ctx)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch exports one batch of pending entries. It returns the number
// of entries successfully exported.
func (p *SyncProcessor) ProcessBatch(ctx context.Context) int {
	pending, err := p.storage.GetPendingSyncEntries(ctx, p.config.BatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to fetch pending entries", "error", err)
		return 0
	}

	if len(pending) == 0 {
		return 0
	}

	slog.DebugContext(ctx, "Processing pending entries", "count", len(pending))

	exported := 0
	for _, item := range pending {
		select {
		case <-p.stopCh:
			return exported
		case <-ctx.Done():
			return exported
		default:
		}

		if err := p.exportEntry(ctx, item.ID); err != nil {
			slog.WarnContext(ctx, "Failed to export entry",
				"id", item.ID, "error", err)
			if markErr := p.storage.MarkSyncError(ctx, item.ID); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark entry sync error",
					"id", item.ID, "error", markErr)
			}
			continue
		}
		exported++
	}
	return exported
}

func (p *SyncProcessor) exportEntry(ctx context.Context, id int64) error {
	entry, err := p.storage.GetEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("get entry %d: %w", id, err)
	}

	ref, err := p.writer.Append(ctx, id, entry)
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := p.storage.MarkSynced(ctx, id); err != nil {
		// The export itself succeeded, only the bookkeeping failed.
		slog.WarnContext(ctx, "Failed to mark entry as synced",
			"id", id, "error", err)
	}

	slog.InfoContext(ctx, "Exported entry to sheet",
		"id", id,
		"sheet_ref", ref)

	return nil
}
