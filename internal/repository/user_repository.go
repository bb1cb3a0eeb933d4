package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nalinda/stockroom/internal/auth"
	"github.com/nalinda/stockroom/internal/identifier"
	"github.com/nalinda/stockroom/internal/model"
)

// UserRepo persists authentication identities in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id, public_id, email, password_hash, role, is_active, created_at, updated_at"

// CreateWithProfile mints document ids, hashes the password and inserts a
// CUSTOMER account together with its shop profile in one transaction.  A
// failed profile insert rolls the user row back, so no account can exist
// without a profile and the email is not burned.  Returns the internal
// user id.
func (r *UserRepo) CreateWithProfile(ctx context.Context, email, password string, cost int, profile model.Customer) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	uid, err := identifier.New()
	if err != nil {
		return "", err
	}
	cid, err := identifier.New()
	if err != nil {
		return "", err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO users (id, public_id, email, password_hash, role, is_active) VALUES (?,?,?,?,?,1)",
		uid, identifier.Public(identifier.KindUser, uid), email, hash, model.RoleCustomer); err != nil {
		if isDuplicate(err) {
			return "", ErrEmailExists
		}
		return "", err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO customers (id, public_id, user_id, first_name, last_name, phone, address_line, city, country) VALUES (?,?,?,?,?,?,?,?,?)",
		cid, identifier.Public(identifier.KindCustomer, cid), uid,
		profile.FirstName, profile.LastName, profile.Phone,
		profile.AddressLine, profile.City, profile.Country); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return uid, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by internal id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id)
}

// SetActive flips the account status flag.  Inactive users fail the
// access gate even with an otherwise valid token.
func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_active=?, updated_at=NOW() WHERE id=?", active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either missing or already in the requested state; confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return ErrNotFound
		}
	}
	return nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.PublicID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// isDuplicate detects MySQL duplicate-key violations (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
