package repository

import (
	"context"
	"database/sql"

	"github.com/wildtrail/booking-backend/internal/model"
)

// ProductRepo persists the local product catalog.  Products are keyed by the
// commerce platform's product_id and upserted, never hard-deleted.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a new ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// Upsert inserts a product row or updates the variant and name fields when a
// row with the same product_id already exists.  Timestamps are managed by
// the database; the struct's time fields are ignored on write.
func (r *ProductRepo) Upsert(ctx context.Context, p model.Product) error {
	const q = `INSERT INTO products (product_id, variant_id, product_name, variant_name)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			variant_id = VALUES(variant_id),
			product_name = VALUES(product_name),
			variant_name = VALUES(variant_name),
			updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, q, p.ProductID, p.VariantID, p.ProductName, p.VariantName)
	return err
}
