package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/qoloner/qoloner-api/internal/models"
)

// UploadRepository tracks in-flight image uploads. A row exists from just
// before the blob upload until the product insert commits; stale rows mark
// orphaned blobs for the cleanup worker.
type UploadRepository struct {
	db *sqlx.DB
}

// NewUploadRepository creates a new UploadRepository.
func NewUploadRepository(db *sqlx.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Record registers an object key about to be uploaded.
func (r *UploadRepository) Record(ctx context.Context, objectKey string) error {
	const q = `INSERT INTO pending_uploads (object_key) VALUES ($1)`
	_, err := r.db.ExecContext(ctx, q, objectKey)
	return err
}

// Resolve removes the ledger row for an object key once the submission
// either committed its product row or never produced a blob.
func (r *UploadRepository) Resolve(ctx context.Context, objectKey string) error {
	const q = `DELETE FROM pending_uploads WHERE object_key = $1`
	_, err := r.db.ExecContext(ctx, q, objectKey)
	return err
}

// ListStale returns ledger rows created before the cutoff. These are blobs
// whose submission was interrupted between upload and insert.
func (r *UploadRepository) ListStale(ctx context.Context, cutoff time.Time) ([]models.PendingUpload, error) {
	const q = `SELECT id, object_key, created_at FROM pending_uploads
        WHERE created_at < $1 ORDER BY created_at`

	var uploads []models.PendingUpload
	if err := r.db.SelectContext(ctx, &uploads, q, cutoff); err != nil {
		return nil, err
	}
	return uploads, nil
}
