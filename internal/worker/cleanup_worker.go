package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/qoloner/qoloner-api/internal/models"
)

// UploadLedger lists and resolves stale pending-upload rows.
type UploadLedger interface {
	ListStale(ctx context.Context, cutoff time.Time) ([]models.PendingUpload, error)
	Resolve(ctx context.Context, objectKey string) error
}

// BlobDeleter removes blobs from the image store.
type BlobDeleter interface {
	Delete(ctx context.Context, key string) error
}

// CleanupWorker sweeps orphaned image blobs left behind by submissions that
// were interrupted between the blob upload and the product insert.
type CleanupWorker struct {
	uploads  UploadLedger
	storage  BlobDeleter
	interval time.Duration
	maxAge   time.Duration
}

// NewCleanupWorker constructs a CleanupWorker.
func NewCleanupWorker(uploads UploadLedger, storage BlobDeleter, interval, maxAge time.Duration) *CleanupWorker {
	return &CleanupWorker{
		uploads:  uploads,
		storage:  storage,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start begins the sweep loop and listens for context cancellation.
func (w *CleanupWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Dur("max_age", w.maxAge).Msg("Starting upload cleanup worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Upload cleanup worker stopped")
			return
		}
	}
}

func (w *CleanupWorker) run(ctx context.Context) {
	cutoff := time.Now().Add(-w.maxAge)
	stale, err := w.uploads.ListStale(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stale uploads")
		return
	}

	for _, u := range stale {
		if err := w.storage.Delete(ctx, u.ObjectKey); err != nil {
			// Keep the ledger row so the next sweep retries.
			log.Warn().Err(err).Str("key", u.ObjectKey).Msg("Failed to delete orphaned blob")
			continue
		}
		if err := w.uploads.Resolve(ctx, u.ObjectKey); err != nil {
			log.Warn().Err(err).Str("key", u.ObjectKey).Msg("Failed to resolve swept upload")
			continue
		}
		log.Info().Str("key", u.ObjectKey).Time("uploaded_at", u.CreatedAt).Msg("Orphaned blob removed")
	}
}
