package middleware // middleware provides shared request processing for handlers

import (
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/nalinda/stockroom/internal/httpx"
    "github.com/nalinda/stockroom/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// user carries one of the given roles.  It assumes AccessGate already ran
// and stored the role under CtxRole.  Denials are written to the audit
// log with the requester's ip, path and user agent; an admin-route denial
// carries the ADMIN_ACCESS_REQUIRED code, everything else FORBIDDEN.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    adminRoute := false
    for _, r := range roles {
        allowed[r] = true
        if r == model.RoleAdmin {
            adminRoute = true
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get(CtxRole).(string)
            if !ok || !allowed[role] {
                req := c.Request()
                log.Printf("audit: role denial ip=%s path=%s ua=%q role=%q required=%v",
                    c.RealIP(), req.URL.Path, req.UserAgent(), role, roles)
                code := httpx.CodeForbidden
                if adminRoute {
                    code = httpx.CodeAdminRequired
                }
                return httpx.Fail(c, http.StatusForbidden, code, "insufficient role")
            }
            return next(c)
        }
    }
}
