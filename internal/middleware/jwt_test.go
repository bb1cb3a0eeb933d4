package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalinda/stockroom/internal/auth"
	"github.com/nalinda/stockroom/internal/blacklist"
	"github.com/nalinda/stockroom/internal/httpx"
	"github.com/nalinda/stockroom/internal/model"
	"github.com/nalinda/stockroom/internal/repository"
)

const (
	gateSecret = "gate-test-secret"
	gateUserID = "64a1f0b2c3d4e5f601234567"
)

// fakeUsers satisfies UserSource with a fixed account map.
type fakeUsers struct {
	users map[string]model.User
	err   error
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (model.User, error) {
	if f.err != nil {
		return model.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

// failingStore simulates blacklist-store unavailability.
type failingStore struct{}

func (failingStore) Add(context.Context, string, time.Time) error { return errors.New("down") }
func (failingStore) Contains(context.Context, string) (bool, error) {
	return false, errors.New("down")
}
func (failingStore) PurgeExpired(context.Context) (int, error) { return 0, errors.New("down") }

type gateEnv struct {
	users   *fakeUsers
	revoked blacklist.Store
	handler echo.HandlerFunc
	reached bool
}

func newGateEnv() *gateEnv {
	env := &gateEnv{
		users: &fakeUsers{users: map[string]model.User{
			gateUserID: {ID: gateUserID, Role: model.RoleCustomer, IsActive: true},
		}},
		revoked: blacklist.NewMemoryStore(),
	}
	env.handler = func(c echo.Context) error {
		env.reached = true
		return c.NoContent(http.StatusOK)
	}
	return env
}

func (env *gateEnv) do(t *testing.T, authHeader string, wrap ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := env.handler
	for i := len(wrap) - 1; i >= 0; i-- {
		h = wrap[i](h)
	}
	h = AccessGate(gateSecret, env.users, env.revoked)(h)
	require.NoError(t, h(c))

	var body struct {
		ErrorCode string `json:"error_code"`
	}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
	}
	return rec, body.ErrorCode
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.NewAccessToken(gateSecret, gateUserID, model.RoleCustomer, 60)
	require.NoError(t, err)
	return tok.Token
}

func TestGateAbsentToken(t *testing.T) {
	env := newGateEnv()
	// Even with a role check chained behind the gate, an absent token must
	// surface TOKEN_ABSENT and never reach the role middleware.
	rec, code := env.do(t, "", RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httpx.CodeTokenAbsent, code)
	assert.False(t, env.reached)

	rec, code = env.do(t, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httpx.CodeTokenAbsent, code)
}

func TestGateInvalidToken(t *testing.T) {
	env := newGateEnv()
	rec, code := env.do(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httpx.CodeTokenInvalid, code)
	assert.False(t, env.reached)
}

func TestGateExpiredToken(t *testing.T) {
	env := newGateEnv()
	tok, err := auth.NewAccessToken(gateSecret, gateUserID, model.RoleCustomer, -1)
	require.NoError(t, err)

	rec, code := env.do(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httpx.CodeTokenExpired, code, "expired must never be reported as invalid")
}

func TestGateBlacklistedToken(t *testing.T) {
	env := newGateEnv()
	raw := validToken(t)
	require.NoError(t, env.revoked.Add(context.Background(), auth.HashToken(raw), time.Now().UTC().Add(time.Hour)))

	rec, code := env.do(t, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httpx.CodeTokenBlacklisted, code)

	// A different, unrevoked token for the same user still passes.
	env.reached = false
	rec, _ = env.do(t, "Bearer "+validToken(t))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.reached)
}

func TestGateUserNotFound(t *testing.T) {
	env := newGateEnv()
	tok, err := auth.NewAccessToken(gateSecret, "64a1f0b2c3d4e5f6ffffffff", model.RoleCustomer, 60)
	require.NoError(t, err)

	rec, code := env.do(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httpx.CodeUserNotFound, code)
}

func TestGateInactiveAccount(t *testing.T) {
	env := newGateEnv()
	env.users.users[gateUserID] = model.User{ID: gateUserID, Role: model.RoleCustomer, IsActive: false}

	rec, code := env.do(t, "Bearer "+validToken(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, httpx.CodeAccountInactive, code)
}

func TestGateStoreUnavailableIsNotATokenError(t *testing.T) {
	env := newGateEnv()
	env.revoked = failingStore{}

	rec, code := env.do(t, "Bearer "+validToken(t))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, httpx.CodeUnavailable, code)
}

func TestGateAdmitsAndInjectsContext(t *testing.T) {
	env := newGateEnv()
	var gotID, gotRole string
	env.handler = func(c echo.Context) error {
		env.reached = true
		gotID, _ = c.Get(CtxUserID).(string)
		gotRole, _ = c.Get(CtxRole).(string)
		return c.NoContent(http.StatusOK)
	}

	rec, _ := env.do(t, "Bearer "+validToken(t))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.reached)
	assert.Equal(t, gateUserID, gotID)
	assert.Equal(t, model.RoleCustomer, gotRole)
}

func TestRequireRole(t *testing.T) {
	env := newGateEnv()
	rec, code := env.do(t, "Bearer "+validToken(t), RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, httpx.CodeAdminRequired, code)
	assert.False(t, env.reached)

	rec, _ = env.do(t, "Bearer "+validToken(t), RequireRole(model.RoleAdmin, model.RoleCustomer))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.reached)
}
