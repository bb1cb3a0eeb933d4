package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalinda/stockroom/internal/auth"
	"github.com/nalinda/stockroom/internal/blacklist"
	"github.com/nalinda/stockroom/internal/config"
	"github.com/nalinda/stockroom/internal/middleware"
	"github.com/nalinda/stockroom/internal/repository"
)

const sessionUserID = "64a1f0b2c3d4e5f601234501"

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, *blacklist.MemoryStore) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	revoked := blacklist.NewMemoryStore()
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	h := NewAuthHandler(cfg,
		repository.NewUserRepo(db), repository.NewCustomerRepo(db),
		repository.NewTokenRepo(db), revoked)
	return h, mock, revoked
}

// logoutContext builds a context the way the access gate leaves it: user
// id, token hash and expiry already set.
func logoutContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, sessionUserID)
	c.Set(middleware.CtxTokenHash, auth.HashToken("the-access-token"))
	c.Set(middleware.CtxTokenExp, time.Now().UTC().Add(15*time.Minute))
	return c, rec
}

func TestLogoutWithoutBodyRevokesAllRefreshTokens(t *testing.T) {
	h, mock, revoked := newAuthHandler(t)
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL").
		WithArgs(sessionUserID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	c, rec := logoutContext("")
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	blocked, err := revoked.Contains(context.Background(), auth.HashToken("the-access-token"))
	require.NoError(t, err)
	assert.True(t, blocked, "access token should be blacklisted")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutWithRefreshTokenRevokesOnlyThatToken(t *testing.T) {
	h, mock, _ := newAuthHandler(t)
	raw := "client-held-refresh-token"
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL").
		WithArgs(auth.HashToken(raw)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := logoutContext(`{"refresh_token":"` + raw + `"}`)
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
