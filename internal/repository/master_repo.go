package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/qoloner/qoloner-api/internal/models"
)

// MasterRepository handles data access for the masters table.
type MasterRepository struct {
	db *sqlx.DB
}

// NewMasterRepository creates a new MasterRepository.
func NewMasterRepository(db *sqlx.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// GetByTelegram returns the master with the exact telegram handle, or
// sql.ErrNoRows when none exists. Used as the pre-insert uniqueness probe:
// handle uniqueness is enforced here, not by a database constraint.
func (r *MasterRepository) GetByTelegram(ctx context.Context, telegram string) (*models.Master, error) {
	const q = `SELECT id, name, city, telegram, phone, created_at, updated_at
        FROM masters WHERE telegram = $1 LIMIT 1`

	var m models.Master
	if err := r.db.GetContext(ctx, &m, q, telegram); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &m, nil
}

// GetByID returns a single master by id.
func (r *MasterRepository) GetByID(ctx context.Context, id int) (*models.Master, error) {
	const q = `SELECT id, name, city, telegram, phone, created_at, updated_at
        FROM masters WHERE id = $1 LIMIT 1`

	var m models.Master
	if err := r.db.GetContext(ctx, &m, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a new master and fills in the generated id and timestamps.
func (r *MasterRepository) Create(ctx context.Context, master *models.Master) error {
	const q = `INSERT INTO masters (name, city, telegram, phone)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, q,
		master.Name,
		master.City,
		master.Telegram,
		master.Phone,
	).Scan(&master.ID, &master.CreatedAt, &master.UpdatedAt)
}
