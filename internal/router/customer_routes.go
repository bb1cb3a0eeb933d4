package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nalinda/stockroom/internal/blacklist"
	"github.com/nalinda/stockroom/internal/handler"
	"github.com/nalinda/stockroom/internal/middleware"
	"github.com/nalinda/stockroom/internal/model"
	"github.com/nalinda/stockroom/internal/repository"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes pass the access gate and require the CUSTOMER role.  Customers
// manage their own profile, place orders and view their own orders.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, users *repository.UserRepo, revoked blacklist.Store, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.AccessGate(jwtSecret, users, revoked),
		middleware.RequireRole(model.RoleCustomer),
	)

	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)

	g.POST("/orders", h.PlaceOrder)
	g.GET("/my-orders", h.ListOrders)
	g.GET("/orders/:id", h.GetOrder)
}
