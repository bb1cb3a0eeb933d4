package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/nalinda/stockroom/internal/httpx"
    "github.com/nalinda/stockroom/internal/identifier"
    "github.com/nalinda/stockroom/internal/model"
    "github.com/nalinda/stockroom/internal/presenter"
    "github.com/nalinda/stockroom/internal/queue"
    "github.com/nalinda/stockroom/internal/repository"
    "github.com/nalinda/stockroom/internal/sanitize"
    publisher "github.com/nalinda/stockroom/internal/service"
)

// CustomerHandler bundles repositories for customer-scoped endpoints:
// the customer's own profile and orders.
type CustomerHandler struct {
    Customers *repository.CustomerRepo
    Users     *repository.UserRepo
    Products  *repository.ProductRepo
    Orders    *repository.OrderRepo
}

func NewCustomerHandler(cu *repository.CustomerRepo, u *repository.UserRepo, p *repository.ProductRepo, o *repository.OrderRepo) *CustomerHandler {
    if cu == nil || u == nil || p == nil || o == nil {
        panic("nil repository passed to NewCustomerHandler")
    }
    return &CustomerHandler{Customers: cu, Users: u, Products: p, Orders: o}
}

// ----- DTOs -----

type profileReq struct {
    FirstName   string `json:"first_name"`
    LastName    string `json:"last_name"`
    Phone       string `json:"phone"`
    AddressLine string `json:"address_line"`
    City        string `json:"city"`
    Country     string `json:"country"`
}

type orderItemReq struct {
    ProductID string `json:"product_id"` // public id
    Quantity  uint32 `json:"quantity"`
}

type placeOrderReq struct {
    Items         []orderItemReq `json:"items"`
    PaymentMethod string         `json:"payment_method"`
}

// maxLineQuantity bounds a single order line.  Keeps the total arithmetic
// far from overflow and rejects obviously bogus carts at the boundary.
const maxLineQuantity = 10000

// GetProfile returns the caller's own, unmasked profile.
func (h *CustomerHandler) GetProfile(c echo.Context) error {
    ctx := c.Request().Context()
    cu, u, err := h.self(ctx, c)
    if err != nil {
        return repoFail(c, err, "profile")
    }
    return httpx.OK(c, http.StatusOK, presenter.Profile(cu, u))
}

// UpdateProfile overwrites the caller's profile fields.  Email is bound
// to the user record and cannot be changed here.
func (h *CustomerHandler) UpdateProfile(c echo.Context) error {
    var req profileReq
    if err := c.Bind(&req); err != nil {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
    }
    ctx := c.Request().Context()
    userID := currentUser(c)
    if err := h.Customers.UpdateProfile(ctx, userID, model.Customer{
        FirstName:   sanitize.Text(req.FirstName),
        LastName:    sanitize.Text(req.LastName),
        Phone:       sanitize.Phone(req.Phone),
        AddressLine: sanitize.Text(req.AddressLine),
        City:        sanitize.Text(req.City),
        Country:     sanitize.Text(req.Country),
    }); err != nil {
        return repoFail(c, err, "profile")
    }
    cu, u, err := h.self(ctx, c)
    if err != nil {
        return repoFail(c, err, "profile")
    }
    return httpx.OK(c, http.StatusOK, presenter.Profile(cu, u))
}

// PlaceOrder creates a PENDING order from the requested items.  Stock is
// verified and decremented inside one transaction; an order.placed event
// is published afterwards on a best-effort basis.
func (h *CustomerHandler) PlaceOrder(c echo.Context) error {
    var req placeOrderReq
    if err := c.Bind(&req); err != nil || len(req.Items) == 0 {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "items required")
    }
    if !model.ValidPaymentMethod(req.PaymentMethod) {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "unknown payment method")
    }
    // Reject malformed lines before touching the database.
    for _, it := range req.Items {
        if it.Quantity == 0 || it.Quantity > maxLineQuantity {
            return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "quantity out of range")
        }
        if !identifier.ValidPublic(it.ProductID) {
            return httpx.Fail(c, http.StatusBadRequest, httpx.CodeInvalidID, "malformed product id")
        }
    }

    ctx := c.Request().Context()
    cu, _, err := h.self(ctx, c)
    if err != nil {
        return repoFail(c, err, "profile")
    }

    lines := make([]repository.OrderLine, 0, len(req.Items))
    for _, it := range req.Items {
        p, err := h.Products.GetByPublicID(ctx, it.ProductID)
        if err != nil {
            return repoFail(c, err, "product")
        }
        lines = append(lines, repository.OrderLine{ProductID: p.ID, Quantity: it.Quantity})
    }

    o, err := h.Orders.Place(ctx, cu.ID, req.PaymentMethod, lines)
    if err != nil {
        return repoFail(c, err, "order")
    }
    items, err := h.Orders.Items(ctx, o.ID)
    if err != nil {
        return repoFail(c, err, "order")
    }

    view := presenter.Order(o, items)
    // Publishing must not delay or fail the checkout response.
    go func(ev queue.OrderPlacedEvent) {
        pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        _ = publisher.PublishOrderPlaced(pubCtx, ev)
    }(queue.OrderPlacedEvent{
        OrderID:       view.ID,
        CustomerID:    view.CustomerID,
        Status:        o.Status,
        TotalCents:    o.TotalCents,
        PaymentMethod: o.PaymentMethod,
        ItemsCount:    len(items),
        PlacedAt:      o.CreatedAt.UTC().Format(time.RFC3339),
    })

    return httpx.OK(c, http.StatusCreated, view)
}

// ListOrders returns the caller's own orders, newest first.
func (h *CustomerHandler) ListOrders(c echo.Context) error {
    ctx := c.Request().Context()
    cu, _, err := h.self(ctx, c)
    if err != nil {
        return repoFail(c, err, "profile")
    }
    orders, err := h.Orders.ListByCustomer(ctx, cu.ID)
    if err != nil {
        return repoFail(c, err, "order")
    }
    out := make([]presenter.OrderView, 0, len(orders))
    for _, o := range orders {
        out = append(out, presenter.Order(o, nil))
    }
    return httpx.Items(c, out)
}

// GetOrder returns one of the caller's orders with item lines.  Another
// customer's order is a 403, not a 404, so ownership problems stay
// distinguishable from missing records.
func (h *CustomerHandler) GetOrder(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    cu, _, selfErr := h.self(ctx, c)
    if selfErr != nil {
        return repoFail(c, selfErr, "profile")
    }
    o, lookupErr := h.Orders.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "order")
    }
    if o.CustomerID != cu.ID {
        return repoFail(c, repository.ErrForbidden, "order")
    }
    items, lookupErr := h.Orders.Items(ctx, o.ID)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "order")
    }
    return httpx.OK(c, http.StatusOK, presenter.Order(o, items))
}

// self loads the caller's customer profile and user record from the
// access-gate context.
func (h *CustomerHandler) self(ctx context.Context, c echo.Context) (model.Customer, model.User, error) {
    userID := currentUser(c)
    cu, err := h.Customers.GetByUserID(ctx, userID)
    if err != nil {
        return model.Customer{}, model.User{}, err
    }
    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return model.Customer{}, model.User{}, err
    }
    return cu, u, nil
}
