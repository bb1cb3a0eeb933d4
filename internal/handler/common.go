package handler // handler defines http handlers

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/nalinda/stockroom/internal/httpx"
    "github.com/nalinda/stockroom/internal/identifier"
    "github.com/nalinda/stockroom/internal/middleware"
    "github.com/nalinda/stockroom/internal/repository"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

// errBadID signals that the 400 response has already been written; the
// default error handler skips committed responses.
var errBadID = errors.New("malformed identifier")

// publicIDParam reads a route :id parameter and validates it against the
// public-identifier format.  Malformed identifiers are rejected at the
// boundary with INVALID_IDENTIFIER before any lookup happens.
func publicIDParam(c echo.Context) (string, error) {
    id := c.Param("id")
    if !identifier.ValidPublic(id) {
        _ = httpx.Fail(c, http.StatusBadRequest, httpx.CodeInvalidID, "malformed identifier")
        return "", errBadID
    }
    return id, nil
}

// currentUser returns the internal user id stored by the access gate.
func currentUser(c echo.Context) string {
    id, _ := c.Get(middleware.CtxUserID).(string)
    return id
}

// repoFail maps repository sentinel errors onto the error envelope.  The
// resource name feeds the message; unknown errors become a 500.
func repoFail(c echo.Context, err error, resource string) error {
    switch err {
    case repository.ErrNotFound:
        return httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, resource+" not found")
    case repository.ErrForbidden:
        return httpx.Fail(c, http.StatusForbidden, httpx.CodeForbidden, "not your "+resource)
    case repository.ErrConflict:
        return httpx.Fail(c, http.StatusConflict, httpx.CodeConflict, resource+" has dependent records")
    case repository.ErrEmailExists:
        return httpx.Fail(c, http.StatusConflict, httpx.CodeConflict, "email already exists")
    case repository.ErrSKUExists:
        return httpx.Fail(c, http.StatusConflict, httpx.CodeConflict, "sku or slug already exists")
    case repository.ErrOutOfStock:
        return httpx.Fail(c, http.StatusConflict, httpx.CodeConflict, "insufficient stock")
    }
    return httpx.Fail(c, http.StatusInternalServerError, httpx.CodeInternal, "database error")
}
