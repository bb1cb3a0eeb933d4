package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // Echo web framework used for routing

    "github.com/nalinda/stockroom/internal/blacklist"
    "github.com/nalinda/stockroom/internal/handler"
    "github.com/nalinda/stockroom/internal/middleware"
    "github.com/nalinda/stockroom/internal/model"
    "github.com/nalinda/stockroom/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check,
// used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.  The
// unauthenticated session operations live under /v1/auth; logout and /me
// require a valid access token and therefore sit behind the access gate.
// The optional limiter middleware (rate limiting) is applied to the
// credential endpoints, which are the ones worth brute-forcing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, users *repository.UserRepo, revoked blacklist.Store, jwtSecret string, limiter echo.MiddlewareFunc) {
    g := e.Group("/v1/auth")
    if limiter != nil {
        g.Use(limiter)
    }
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Rotating refresh: the presented refresh token is revoked and a new
    // pair is returned.
    g.POST("/refresh", a.Refresh)
    // Non-rotating: issues a fresh access token while reusing the
    // existing refresh token.
    g.POST("/refresh-access", a.RefreshAccess)

    gate := middleware.AccessGate(jwtSecret, users, revoked)
    // Logout needs the access token itself so its hash can be
    // blacklisted for the token's remaining lifetime.
    e.POST("/v1/logout", a.Logout, gate)
    e.GET("/v1/me", a.Me, gate, middleware.RequireRole(model.RoleAdmin, model.RoleCustomer))
}

// RegisterPublic registers the unauthenticated catalog endpoints.  The
// optional cache middleware serves repeated catalog reads from Redis.
func RegisterPublic(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1")
    if cache != nil {
        g.Use(cache)
    }
    g.GET("/products", h.ListProducts)
    g.GET("/products/:id", h.GetProduct)
    g.GET("/categories", h.ListCategories)
    g.GET("/categories/:id/products", h.ListCategoryProducts)
}
