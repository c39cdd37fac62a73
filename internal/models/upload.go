package models

import "time"

// PendingUpload is a ledger row recorded before an image blob is uploaded
// and resolved once the product insert commits. Rows left behind by an
// interrupted submission are swept by the cleanup worker.
type PendingUpload struct {
	ID        int       `db:"id"`
	ObjectKey string    `db:"object_key"`
	CreatedAt time.Time `db:"created_at"`
}
