package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/nalinda/stockroom/internal/blacklist"
	"github.com/nalinda/stockroom/internal/handler"
	"github.com/nalinda/stockroom/internal/middleware"
	"github.com/nalinda/stockroom/internal/model"
	"github.com/nalinda/stockroom/internal/repository"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes pass the access gate and require the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, users *repository.UserRepo, revoked blacklist.Store, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.AccessGate(jwtSecret, users, revoked),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Categories ----
	g.POST("/categories", a.CreateCategory)
	g.PUT("/categories/:id", a.UpdateCategory)
	g.PATCH("/categories/:id", a.UpdateCategory) // allow partial updates via PATCH as well
	g.DELETE("/categories/:id", a.DeleteCategory)

	// ---- Products ----
	g.POST("/products", a.CreateProduct)
	g.GET("/products", a.ListProducts) // includes inactive items, unlike the public catalog
	g.PUT("/products/:id", a.UpdateProduct)
	g.PATCH("/products/:id", a.UpdateProduct)
	g.PATCH("/products/:id/stock", a.UpdateStock)
	g.DELETE("/products/:id", a.DeleteProduct)

	// ---- Customers ----
	g.GET("/customers", a.ListCustomers)
	g.GET("/customers/:id", a.GetCustomer)
	g.PATCH("/customers/:id/status", a.SetCustomerStatus)

	// ---- Orders ----
	g.GET("/orders", a.ListOrders)
	g.GET("/orders/:id", a.GetOrder)
	g.PATCH("/orders/:id/status", a.SetOrderStatus)
}
