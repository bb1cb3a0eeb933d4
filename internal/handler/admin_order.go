package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/nalinda/stockroom/internal/httpx"
    "github.com/nalinda/stockroom/internal/model"
    "github.com/nalinda/stockroom/internal/presenter"
    "github.com/nalinda/stockroom/internal/sanitize"
)

// ListOrders returns orders across all customers, optionally filtered by
// ?status=.
func (h *AdminHandler) ListOrders(c echo.Context) error {
    status := strings.ToUpper(sanitize.Text(c.QueryParam("status")))
    orders, err := h.Orders.ListAll(c.Request().Context(), status)
    if err != nil {
        return repoFail(c, err, "order")
    }
    out := make([]presenter.OrderView, 0, len(orders))
    for _, o := range orders {
        out = append(out, presenter.Order(o, nil))
    }
    return httpx.Items(c, out)
}

// GetOrder returns one order with its item lines.
func (h *AdminHandler) GetOrder(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    o, lookupErr := h.Orders.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "order")
    }
    items, lookupErr := h.Orders.Items(ctx, o.ID)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "order")
    }
    return httpx.OK(c, http.StatusOK, presenter.Order(o, items))
}

type orderStatusReq struct {
    Status     string `json:"status"`
    PaymentRef string `json:"payment_ref"`
}

// SetOrderStatus moves an order along its state machine.  Invalid
// transitions are a 409; cancellation restocks the items.  payment_ref
// is recorded when the order becomes PAID.
func (h *AdminHandler) SetOrderStatus(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    var req orderStatusReq
    if err := c.Bind(&req); err != nil {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
    }
    to := strings.ToUpper(sanitize.Text(req.Status))
    switch to {
    case model.OrderPaid, model.OrderShipped, model.OrderDelivered, model.OrderCancelled:
    default:
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "unknown status")
    }

    ctx := c.Request().Context()
    o, lookupErr := h.Orders.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "order")
    }

    var ref *string
    if to == model.OrderPaid && req.PaymentRef != "" {
        v := sanitize.Text(req.PaymentRef)
        ref = &v
    }
    if err := h.Orders.UpdateStatus(ctx, o.ID, to, ref); err != nil {
        return repoFail(c, err, "order")
    }
    updated, lookupErr := h.Orders.GetByID(ctx, o.ID)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "order")
    }
    items, lookupErr := h.Orders.Items(ctx, o.ID)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "order")
    }
    return httpx.OK(c, http.StatusOK, presenter.Order(updated, items))
}
