package middleware // middleware provides shared request processing for handlers

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/nalinda/stockroom/internal/auth"
    "github.com/nalinda/stockroom/internal/blacklist"
    "github.com/nalinda/stockroom/internal/httpx"
    "github.com/nalinda/stockroom/internal/model"
    "github.com/nalinda/stockroom/internal/repository"
)

// Context keys populated by AccessGate for downstream handlers.
const (
    CtxUserID    = "user_id"    // internal user id (string)
    CtxRole      = "role"       // ADMIN or CUSTOMER
    CtxTokenHash = "token_hash" // SHA-256 hex of the presented access token
    CtxTokenExp  = "token_exp"  // token expiry (time.Time)
)

// UserSource is the account lookup the gate performs once a token's
// claims verify.  *repository.UserRepo satisfies it; tests inject fakes.
type UserSource interface {
    GetByID(ctx context.Context, id string) (model.User, error)
}

// AccessGate returns the authentication middleware for protected routes.
// Checks run in a fixed order and the first failure short-circuits with
// its own error code:
//
//	token present -> structurally valid -> not expired -> not blacklisted
//	-> user exists -> user active
//
// Role enforcement is a separate middleware (RequireRole) so the ordering
// guarantee "an absent token never reaches the role check" falls out of
// middleware chaining.  On success the user id, role and token hash are
// stored in the request context.
func AccessGate(secret string, users UserSource, revoked blacklist.Store) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            header := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(header, "Bearer ") {
                return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeTokenAbsent, "missing bearer token")
            }
            raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
            if raw == "" {
                return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeTokenAbsent, "missing bearer token")
            }

            claims, err := auth.ParseAccessToken(secret, raw)
            if err != nil {
                if errors.Is(err, auth.ErrTokenExpired) {
                    return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeTokenExpired, "access token expired")
                }
                return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeTokenInvalid, "invalid access token")
            }

            // Revocation check happens before the user lookup: a logged-out
            // token is dead even if the account is fine.  A store failure is
            // an infrastructure problem, not a verdict on the token.
            hash := auth.HashToken(raw)
            ctx := c.Request().Context()
            isRevoked, err := revoked.Contains(ctx, hash)
            if err != nil {
                return httpx.Fail(c, http.StatusServiceUnavailable, httpx.CodeUnavailable, "token revocation check unavailable")
            }
            if isRevoked {
                return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeTokenBlacklisted, "access token revoked")
            }

            u, err := users.GetByID(ctx, claims.UserID)
            if err != nil {
                if errors.Is(err, repository.ErrNotFound) {
                    return httpx.Fail(c, http.StatusNotFound, httpx.CodeUserNotFound, "user not found")
                }
                return httpx.Fail(c, http.StatusServiceUnavailable, httpx.CodeUnavailable, "user lookup unavailable")
            }
            if !u.IsActive {
                return httpx.Fail(c, http.StatusForbidden, httpx.CodeAccountInactive, "account is inactive")
            }

            c.Set(CtxUserID, u.ID)
            c.Set(CtxRole, u.Role)
            c.Set(CtxTokenHash, hash)
            c.Set(CtxTokenExp, claims.ExpiresAt)
            return next(c)
        }
    }
}
