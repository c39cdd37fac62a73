package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/qoloner/qoloner-api/internal/models"
)

type fakeUploadLedger struct {
	stale    []models.PendingUpload
	listErr  error
	resolved []string

	gotCutoff time.Time
}

func (f *fakeUploadLedger) ListStale(ctx context.Context, cutoff time.Time) ([]models.PendingUpload, error) {
	f.gotCutoff = cutoff
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.stale, nil
}

func (f *fakeUploadLedger) Resolve(ctx context.Context, objectKey string) error {
	f.resolved = append(f.resolved, objectKey)
	return nil
}

type fakeBlobDeleter struct {
	failKeys map[string]bool
	deleted  []string
}

func (f *fakeBlobDeleter) Delete(ctx context.Context, key string) error {
	if f.failKeys[key] {
		return errors.New("AccessDenied")
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func TestCleanupWorker_SweepsStaleUploads(t *testing.T) {
	uploads := &fakeUploadLedger{
		stale: []models.PendingUpload{
			{ID: 1, ObjectKey: "products/1_aa.jpg", CreatedAt: time.Now().Add(-2 * time.Hour)},
			{ID: 2, ObjectKey: "products/2_bb.jpg", CreatedAt: time.Now().Add(-3 * time.Hour)},
		},
	}
	storage := &fakeBlobDeleter{}

	w := NewCleanupWorker(uploads, storage, time.Minute, time.Hour)
	w.run(context.Background())

	assert.Equal(t, []string{"products/1_aa.jpg", "products/2_bb.jpg"}, storage.deleted)
	assert.Equal(t, []string{"products/1_aa.jpg", "products/2_bb.jpg"}, uploads.resolved)
	assert.WithinDuration(t, time.Now().Add(-time.Hour), uploads.gotCutoff, 5*time.Second)
}

func TestCleanupWorker_KeepsRowWhenDeleteFails(t *testing.T) {
	uploads := &fakeUploadLedger{
		stale: []models.PendingUpload{
			{ID: 1, ObjectKey: "products/1_aa.jpg"},
			{ID: 2, ObjectKey: "products/2_bb.jpg"},
		},
	}
	storage := &fakeBlobDeleter{failKeys: map[string]bool{"products/1_aa.jpg": true}}

	w := NewCleanupWorker(uploads, storage, time.Minute, time.Hour)
	w.run(context.Background())

	// The failed key stays in the ledger for the next sweep; the other is gone.
	assert.Equal(t, []string{"products/2_bb.jpg"}, storage.deleted)
	assert.Equal(t, []string{"products/2_bb.jpg"}, uploads.resolved)
}

func TestCleanupWorker_ListErrorSkipsSweep(t *testing.T) {
	uploads := &fakeUploadLedger{listErr: errors.New("connection refused")}
	storage := &fakeBlobDeleter{}

	w := NewCleanupWorker(uploads, storage, time.Minute, time.Hour)
	w.run(context.Background())

	assert.Empty(t, storage.deleted)
	assert.Empty(t, uploads.resolved)
}
