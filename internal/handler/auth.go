package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/nalinda/stockroom/internal/auth"
    "github.com/nalinda/stockroom/internal/blacklist"
    "github.com/nalinda/stockroom/internal/config"
    "github.com/nalinda/stockroom/internal/httpx"
    "github.com/nalinda/stockroom/internal/middleware"
    "github.com/nalinda/stockroom/internal/model"
    "github.com/nalinda/stockroom/internal/presenter"
    "github.com/nalinda/stockroom/internal/repository"
    "github.com/nalinda/stockroom/internal/sanitize"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Cfg       config.Config
    Users     *repository.UserRepo
    Customers *repository.CustomerRepo
    Tokens    *repository.TokenRepo
    Revoked   blacklist.Store
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, cu *repository.CustomerRepo, t *repository.TokenRepo, revoked blacklist.Store) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Customers: cu, Tokens: t, Revoked: revoked}
}

// ----- DTOs -----

type registerReq struct {
    Email     string `json:"email"`
    Password  string `json:"password"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
    Phone     string `json:"phone"`
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}
type refreshReq struct {
    RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type userPart struct {
    ID    string `json:"id"` // public id
    Email string `json:"email"`
    Role  string `json:"role"`
}
type authResp struct {
    User    userPart  `json:"user"`
    Access  tokenPart `json:"access"`
    Refresh tokenPart `json:"refresh"`
}

// Register creates a CUSTOMER account with its shop profile and returns a
// token pair immediately.  Admin accounts are provisioned out of band.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
    }
    req.Email = sanitize.Email(req.Email)
    req.FirstName = sanitize.Text(req.FirstName)
    req.LastName = sanitize.Text(req.LastName)
    req.Phone = sanitize.Phone(req.Phone)
    if req.Email == "" || req.Password == "" {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "email and password required")
    }
    if !strings.Contains(req.Email, "@") {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid email")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // Account and profile are inserted in one transaction: a failed
    // profile insert must not leave a profileless account behind.
    uid, err := h.Users.CreateWithProfile(ctx, req.Email, req.Password, h.Cfg.BcryptCost, model.Customer{
        FirstName: req.FirstName,
        LastName:  req.LastName,
        Phone:     req.Phone,
    })
    if err != nil {
        if err == repository.ErrEmailExists {
            return httpx.Fail(c, http.StatusConflict, httpx.CodeConflict, "email already exists")
        }
        return httpx.Fail(c, http.StatusInternalServerError, httpx.CodeInternal, "create account failed")
    }

    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return httpx.Fail(c, http.StatusInternalServerError, httpx.CodeInternal, "load user failed")
    }
    return h.issuePair(c, ctx, u, http.StatusCreated)
}

// Login verifies credentials and returns a new token pair.  Inactive
// accounts cannot log in even with correct credentials.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
    }
    req.Email = sanitize.Email(req.Email)
    if req.Email == "" || req.Password == "" {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "email and password required")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if err == repository.ErrNotFound {
            return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeBadCredentials, "invalid credentials")
        }
        return httpx.Fail(c, http.StatusInternalServerError, httpx.CodeInternal, "query failed")
    }
    if !auth.VerifyPassword(u.PasswordHash, req.Password) {
        return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeBadCredentials, "invalid credentials")
    }
    if !u.IsActive {
        return httpx.Fail(c, http.StatusForbidden, httpx.CodeAccountInactive, "account is inactive")
    }
    return h.issuePair(c, ctx, u, http.StatusOK)
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "refresh_token required")
    }
    hash := auth.HashToken(strings.TrimSpace(req.RefreshToken))

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if err != nil {
        return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeTokenInvalid, "invalid refresh token")
    }
    _ = h.Tokens.RevokeByHash(ctx, hash)

    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeTokenInvalid, "invalid refresh token")
    }
    if !u.IsActive {
        return httpx.Fail(c, http.StatusForbidden, httpx.CodeAccountInactive, "account is inactive")
    }
    return h.issuePair(c, ctx, u, http.StatusOK)
}

// RefreshAccess validates a refresh token and returns a new access token
// WITHOUT rotating the refresh token.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "refresh_token required")
    }
    hash := auth.HashToken(strings.TrimSpace(req.RefreshToken))

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if err != nil {
        return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeTokenInvalid, "invalid refresh token")
    }
    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeTokenInvalid, "invalid refresh token")
    }
    if !u.IsActive {
        return httpx.Fail(c, http.StatusForbidden, httpx.CodeAccountInactive, "account is inactive")
    }

    access, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return httpx.Fail(c, http.StatusInternalServerError, httpx.CodeInternal, "issue access failed")
    }
    return httpx.OK(c, http.StatusOK, echo.Map{
        "access": tokenPart{Token: access.Token, Expires: access.Exp},
    })
}

// Logout ends the session behind the presented access token: the token's
// hash goes onto the blacklist for its remaining lifetime.  When the body
// carries a refresh token, only that token is revoked; with a bare bearer
// token the user is logged out everywhere and all their refresh tokens
// die.  Runs behind the access gate, so the context already carries the
// token hash and expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    hash, _ := c.Get(middleware.CtxTokenHash).(string)
    exp, _ := c.Get(middleware.CtxTokenExp).(time.Time)
    if hash != "" {
        if err := h.Revoked.Add(ctx, hash, exp); err != nil {
            return httpx.Fail(c, http.StatusServiceUnavailable, httpx.CodeUnavailable, "revocation store unavailable")
        }
    }

    var req refreshReq
    if err := c.Bind(&req); err == nil && strings.TrimSpace(req.RefreshToken) != "" {
        _ = h.Tokens.RevokeByHash(ctx, auth.HashToken(strings.TrimSpace(req.RefreshToken)))
    } else {
        _ = h.Tokens.RevokeAllForUser(ctx, currentUser(c))
    }
    return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's own profile.
func (h *AuthHandler) Me(c echo.Context) error {
    userID, _ := c.Get(middleware.CtxUserID).(string)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return httpx.Fail(c, http.StatusNotFound, httpx.CodeUserNotFound, "user not found")
    }
    if u.Role == model.RoleCustomer {
        if cu, err := h.Customers.GetByUserID(ctx, userID); err == nil {
            return httpx.OK(c, http.StatusOK, presenter.Profile(cu, u))
        }
    }
    return httpx.OK(c, http.StatusOK, userPart{ID: u.PublicID, Email: u.Email, Role: u.Role})
}

// issuePair mints and persists an access/refresh pair for the user.
func (h *AuthHandler) issuePair(c echo.Context, ctx context.Context, u model.User, status int) error {
    access, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return httpx.Fail(c, http.StatusInternalServerError, httpx.CodeInternal, "issue access failed")
    }
    refresh, err := auth.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return httpx.Fail(c, http.StatusInternalServerError, httpx.CodeInternal, "issue refresh failed")
    }
    if err := h.Tokens.StoreRefresh(ctx, u.ID, auth.HashToken(refresh.Raw), refresh.Exp); err != nil {
        return httpx.Fail(c, http.StatusInternalServerError, httpx.CodeInternal, "save refresh failed")
    }
    return httpx.OK(c, status, authResp{
        User:    userPart{ID: u.PublicID, Email: u.Email, Role: u.Role},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
    })
}
