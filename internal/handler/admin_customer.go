package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/nalinda/stockroom/internal/httpx"
    "github.com/nalinda/stockroom/internal/presenter"
)

// ListCustomers returns every customer profile with masked PII.
func (h *AdminHandler) ListCustomers(c echo.Context) error {
    ctx := c.Request().Context()
    customers, err := h.Customers.ListAll(ctx)
    if err != nil {
        return repoFail(c, err, "customer")
    }
    out := make([]presenter.CustomerView, 0, len(customers))
    for _, cu := range customers {
        u, err := h.Users.GetByID(ctx, cu.UserID)
        if err != nil {
            return repoFail(c, err, "customer")
        }
        out = append(out, presenter.Customer(cu, u))
    }
    return httpx.Items(c, out)
}

// GetCustomer returns one customer by public id, PII masked.
func (h *AdminHandler) GetCustomer(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    cu, lookupErr := h.Customers.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "customer")
    }
    u, lookupErr := h.Users.GetByID(ctx, cu.UserID)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "customer")
    }
    return httpx.OK(c, http.StatusOK, presenter.Customer(cu, u))
}

type statusReq struct {
    Active *bool `json:"active"`
}

// SetCustomerStatus activates or deactivates a customer's account.  A
// deactivated account fails the access gate on its next request even if
// its token is still unexpired.
func (h *AdminHandler) SetCustomerStatus(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    var req statusReq
    if err := c.Bind(&req); err != nil || req.Active == nil {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "active flag required")
    }
    ctx := c.Request().Context()
    cu, lookupErr := h.Customers.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "customer")
    }
    if err := h.Users.SetActive(ctx, cu.UserID, *req.Active); err != nil {
        return repoFail(c, err, "customer")
    }
    u, lookupErr := h.Users.GetByID(ctx, cu.UserID)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "customer")
    }
    return httpx.OK(c, http.StatusOK, presenter.Customer(cu, u))
}
