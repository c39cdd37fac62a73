package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/qoloner/qoloner-api/internal/models"
)

// productColumns is the catalog projection: every product column plus the
// owning master's city, which the city filter matches on.
const productColumns = `p.id, p.title, p.description, p.price, p.category,
        p.image_url, p.master_id, p.created_at, p.updated_at, m.city`

// ProductRepository handles data access for the products table.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns the whole catalog in insertion order. This backs the
// snapshot cache; filtering over the snapshot happens in memory.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	const q = `SELECT ` + productColumns + `
        FROM products p
        JOIN masters m ON m.id = p.master_id
        ORDER BY p.id`

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// List returns a filtered, paginated catalog page along with the total
// match count. Empty or sentinel filter values ("Все", "Все города") are
// ignored respectively. Page begins at 1.
func (r *ProductRepository) List(ctx context.Context, f models.CatalogFilter, page, limit int) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	category := f.Category
	if category == models.AllCategories {
		category = ""
	}
	city := f.City
	if city == models.AllCities {
		city = ""
	}

	const baseWhere = `FROM products p
        JOIN masters m ON m.id = p.master_id
        WHERE ($1 = '' OR p.category = $1)
        AND ($2 = '' OR m.city = $2)
        AND p.price BETWEEN $3 AND $4`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) `+baseWhere,
		category, city, f.MinPrice, f.MaxPrice); err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` `+baseWhere+` ORDER BY p.id LIMIT $5 OFFSET $6`,
		category, city, f.MinPrice, f.MaxPrice, limit, offset); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetDetail returns a single product joined with the owning master's
// contact profile, or sql.ErrNoRows when the product does not exist.
func (r *ProductRepository) GetDetail(ctx context.Context, id int) (*models.ProductDetail, error) {
	const q = `SELECT ` + productColumns + `,
            m.name AS "master.name",
            m.city AS "master.city",
            m.telegram AS "master.telegram",
            m.phone AS "master.phone"
        FROM products p
        JOIN masters m ON m.id = p.master_id
        WHERE p.id = $1 LIMIT 1`

	var d models.ProductDetail
	if err := r.db.GetContext(ctx, &d, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &d, nil
}

// Create inserts a new product and fills in the generated id and timestamps.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	const q = `INSERT INTO products (title, description, price, category, image_url, master_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, q,
		product.Title,
		product.Description,
		product.Price,
		product.Category,
		product.ImageURL,
		product.MasterID,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}
