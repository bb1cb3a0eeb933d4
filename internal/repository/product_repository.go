package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/nalinda/stockroom/internal/identifier"
	"github.com/nalinda/stockroom/internal/model"
)

// ProductRepo persists sellable items in the 'products' table.  Image
// URLs are stored as a JSON array column.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productCols = "id, public_id, category_id, name, sku, description, price_cents, currency, stock, images, is_active, created_at, updated_at"

// ProductFilter narrows List results.  Zero values mean "no filter".
type ProductFilter struct {
	CategoryID string // internal category id
	InStock    bool   // only products with stock > 0
	Query      string // substring match on name or sku
	ActiveOnly bool   // only is_active products (public catalog)
}

// Create inserts a product and returns the internal id.  A duplicate SKU
// yields ErrSKUExists.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (string, error) {
	id, err := identifier.New()
	if err != nil {
		return "", err
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return "", err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO products (id, public_id, category_id, name, sku, description, price_cents, currency, stock, images, is_active) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		id, identifier.Public(identifier.KindProduct, id), p.CategoryID,
		p.Name, p.SKU, p.Description, p.PriceCents, p.Currency, p.Stock, images, p.IsActive)
	if err != nil {
		if isDuplicate(err) {
			return "", ErrSKUExists
		}
		return "", err
	}
	return id, nil
}

// GetByID fetches a product by internal id.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (model.Product, error) {
	return r.scanOne(ctx, "SELECT "+productCols+" FROM products WHERE id=? LIMIT 1", id)
}

// GetByPublicID fetches a product by its wire-visible identifier via the
// indexed public_id column.
func (r *ProductRepo) GetByPublicID(ctx context.Context, publicID string) (model.Product, error) {
	return r.scanOne(ctx, "SELECT "+productCols+" FROM products WHERE public_id=? LIMIT 1", publicID)
}

// List returns products matching the filter, newest first.
func (r *ProductRepo) List(ctx context.Context, f ProductFilter) ([]model.Product, error) {
	query := "SELECT " + productCols + " FROM products WHERE 1=1"
	var args []any
	if f.CategoryID != "" {
		query += " AND category_id=?"
		args = append(args, f.CategoryID)
	}
	if f.InStock {
		query += " AND stock > 0"
	}
	if f.Query != "" {
		query += " AND (name LIKE ? OR sku LIKE ?)"
		like := "%" + f.Query + "%"
		args = append(args, like, like)
	}
	if f.ActiveOnly {
		query += " AND is_active=1"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update overwrites a product's catalog fields.  Stock is excluded: it
// only moves through AdjustStock and the order transaction paths.
func (r *ProductRepo) Update(ctx context.Context, p model.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE products SET category_id=?, name=?, sku=?, description=?, price_cents=?, currency=?, images=?, is_active=?, updated_at=NOW() WHERE id=?",
		p.CategoryID, p.Name, p.SKU, p.Description, p.PriceCents, p.Currency, images, p.IsActive, p.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrSKUExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return ErrNotFound
		}
	}
	return nil
}

// AdjustStock applies a signed delta to a product's stock.  The WHERE
// clause floors the quantity at zero, so an oversized negative delta
// affects no rows and returns ErrOutOfStock.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int32) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE products SET stock = stock + ?, updated_at=NOW() WHERE id=? AND stock + ? >= 0",
		delta, id, delta)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrNotFound
		}
		return ErrOutOfStock
	}
	return nil
}

// Delete removes a product.  Products referenced by order items are kept
// for order history and yield ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM order_items WHERE product_id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProduct(rs rowScanner) (model.Product, error) {
	var p model.Product
	var images []byte
	err := rs.Scan(&p.ID, &p.PublicID, &p.CategoryID, &p.Name, &p.SKU, &p.Description,
		&p.PriceCents, &p.Currency, &p.Stock, &images, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Product{}, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return model.Product{}, err
		}
	}
	return p, nil
}

func (r *ProductRepo) scanOne(ctx context.Context, query string, arg any) (model.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return model.Product{}, ErrNotFound
	}
	return p, err
}
