package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalinda/stockroom/internal/model"
)

const (
	insertUserSQL     = "INSERT INTO users (id, public_id, email, password_hash, role, is_active) VALUES (?,?,?,?,?,1)"
	insertCustomerSQL = "INSERT INTO customers (id, public_id, user_id, first_name, last_name, phone, address_line, city, country) VALUES (?,?,?,?,?,?,?,?,?)"
)

func TestCreateWithProfileCommitsBothRows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(insertUserSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "jane@example.com", sqlmock.AnyArg(), model.RoleCustomer).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertCustomerSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "Jane", "Doe", "1234567890", "", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	uid, err := repo.CreateWithProfile(context.Background(), "  Jane@Example.COM ", "s3cret", 4,
		model.Customer{FirstName: "Jane", LastName: "Doe", Phone: "1234567890"})
	require.NoError(t, err)
	assert.Len(t, uid, 24)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithProfileRollsBackOnProfileFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	// User insert succeeds, profile insert fails: the whole registration
	// must roll back so no profileless account survives.
	mock.ExpectBegin()
	mock.ExpectExec(insertUserSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "jane@example.com", sqlmock.AnyArg(), model.RoleCustomer).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertCustomerSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "Jane", "", "", "", "", "").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.CreateWithProfile(context.Background(), "jane@example.com", "s3cret", 4,
		model.Customer{FirstName: "Jane"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithProfileDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(insertUserSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "jane@example.com", sqlmock.AnyArg(), model.RoleCustomer).
		WillReturnError(errors.New("Error 1062: Duplicate entry 'jane@example.com' for key 'users.email'"))
	mock.ExpectRollback()

	_, err := repo.CreateWithProfile(context.Background(), "jane@example.com", "s3cret", 4, model.Customer{})
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNormalizesInput(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT " + userCols + " FROM users WHERE email=? LIMIT 1").
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "public_id", "email", "password_hash", "role", "is_active", "created_at", "updated_at",
		}).AddRow("64f000000000000000000003", "usr_aabbccddeeff0011", "jane@example.com",
			"$2a$10$hash", "CUSTOMER", true, now, now))

	u, err := repo.GetByEmail(context.Background(), "  Jane@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT " + userCols + " FROM users WHERE id=? LIMIT 1").
		WithArgs("64f0000000000000000000ff").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "64f0000000000000000000ff")
	assert.ErrorIs(t, err, ErrNotFound)
}
