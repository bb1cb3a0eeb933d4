package repository

import (
	"context"
	"database/sql"

	"github.com/nalinda/stockroom/internal/identifier"
	"github.com/nalinda/stockroom/internal/model"
)

// CategoryRepo persists the category tree in the 'categories' table.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

const categoryCols = "id, public_id, parent_id, name, slug, created_at, updated_at"

// Create inserts a category and returns the internal id.  parentID may be
// nil for top-level categories; a duplicate slug yields ErrSKUExists.
func (r *CategoryRepo) Create(ctx context.Context, name, slug string, parentID *string) (string, error) {
	id, err := identifier.New()
	if err != nil {
		return "", err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO categories (id, public_id, parent_id, name, slug) VALUES (?,?,?,?,?)",
		id, identifier.Public(identifier.KindCategory, id), parentID, name, slug)
	if err != nil {
		if isDuplicate(err) {
			return "", ErrSKUExists
		}
		return "", err
	}
	return id, nil
}

// GetByID fetches a category by internal id.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (model.Category, error) {
	return r.scanOne(ctx, "SELECT "+categoryCols+" FROM categories WHERE id=? LIMIT 1", id)
}

// GetByPublicID fetches a category by its wire-visible identifier.
func (r *CategoryRepo) GetByPublicID(ctx context.Context, publicID string) (model.Category, error) {
	return r.scanOne(ctx, "SELECT "+categoryCols+" FROM categories WHERE public_id=? LIMIT 1", publicID)
}

// ListAll returns every category ordered by name.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+categoryCols+" FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.PublicID, &c.ParentID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update renames a category and/or moves it under a new parent.
func (r *CategoryRepo) Update(ctx context.Context, id, name, slug string, parentID *string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE categories SET name=?, slug=?, parent_id=?, updated_at=NOW() WHERE id=?",
		name, slug, parentID, id)
	if err != nil {
		if isDuplicate(err) {
			return ErrSKUExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes an empty category.  Categories that still have child
// categories or products yield ErrConflict.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE parent_id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products WHERE category_id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CountProducts returns the number of products in a category, used for
// the items_count presentation field.
func (r *CategoryRepo) CountProducts(ctx context.Context, id string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products WHERE category_id=?", id).Scan(&n)
	return n, err
}

func (r *CategoryRepo) scanOne(ctx context.Context, query string, arg any) (model.Category, error) {
	var c model.Category
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.PublicID, &c.ParentID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Category{}, ErrNotFound
	}
	return c, err
}
