package repository

import (
	"context"
	"database/sql"

	"github.com/nalinda/stockroom/internal/model"
)

// CustomerRepo reads and updates shop profiles in the 'customers' table.
// Profile rows are created together with their user account inside
// UserRepo.CreateWithProfile, so this repository has no insert path.
type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

const customerCols = "id, public_id, user_id, first_name, last_name, phone, address_line, city, country, created_at, updated_at"

// GetByUserID fetches the profile owned by a user account.
func (r *CustomerRepo) GetByUserID(ctx context.Context, userID string) (model.Customer, error) {
	return r.scanOne(ctx, "SELECT "+customerCols+" FROM customers WHERE user_id=? LIMIT 1", userID)
}

// GetByPublicID fetches a profile by its wire-visible identifier.  The
// public_id column is indexed, so no rehash scan happens here.
func (r *CustomerRepo) GetByPublicID(ctx context.Context, publicID string) (model.Customer, error) {
	return r.scanOne(ctx, "SELECT "+customerCols+" FROM customers WHERE public_id=? LIMIT 1", publicID)
}

// ListAll returns every profile, newest first.
func (r *CustomerRepo) ListAll(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+customerCols+" FROM customers ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.PublicID, &c.UserID, &c.FirstName, &c.LastName,
			&c.Phone, &c.AddressLine, &c.City, &c.Country, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateProfile overwrites the mutable profile fields for a user's own
// record.  Email lives on users and is immutable here.
func (r *CustomerRepo) UpdateProfile(ctx context.Context, userID string, c model.Customer) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET first_name=?, last_name=?, phone=?, address_line=?, city=?, country=?, updated_at=NOW() WHERE user_id=?",
		c.FirstName, c.LastName, c.Phone, c.AddressLine, c.City, c.Country, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByUserID(ctx, userID); err != nil {
			return ErrNotFound
		}
	}
	return nil
}

func (r *CustomerRepo) scanOne(ctx context.Context, query string, arg any) (model.Customer, error) {
	var c model.Customer
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.PublicID, &c.UserID, &c.FirstName, &c.LastName,
		&c.Phone, &c.AddressLine, &c.City, &c.Country, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Customer{}, ErrNotFound
	}
	return c, err
}
