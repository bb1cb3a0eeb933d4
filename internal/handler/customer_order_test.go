package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalinda/stockroom/internal/identifier"
	"github.com/nalinda/stockroom/internal/middleware"
	"github.com/nalinda/stockroom/internal/repository"
)

func newCustomerHandler(t *testing.T) (*CustomerHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	h := NewCustomerHandler(
		repository.NewCustomerRepo(db), repository.NewUserRepo(db),
		repository.NewProductRepo(db), repository.NewOrderRepo(db))
	return h, mock
}

func orderContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, sessionUserID)
	return c, rec
}

// Line validation runs before any lookup, so none of these set database
// expectations: a bad cart must not touch the database at all.

func TestPlaceOrderRejectsOversizedQuantity(t *testing.T) {
	h, mock := newCustomerHandler(t)
	pid := identifier.Public(identifier.KindProduct, "64a1f0b2c3d4e5f601234567")

	c, rec := orderContext(`{"payment_method":"card","items":[{"product_id":"` + pid + `","quantity":20000}]}`)
	require.NoError(t, h.PlaceOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, rec.Body.String(), "quantity out of range")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderRejectsZeroQuantity(t *testing.T) {
	h, mock := newCustomerHandler(t)
	pid := identifier.Public(identifier.KindProduct, "64a1f0b2c3d4e5f601234567")

	c, rec := orderContext(`{"payment_method":"card","items":[{"product_id":"` + pid + `","quantity":0}]}`)
	require.NoError(t, h.PlaceOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderRejectsMalformedProductID(t *testing.T) {
	h, mock := newCustomerHandler(t)

	c, rec := orderContext(`{"payment_method":"card","items":[{"product_id":"not-a-public-id","quantity":1}]}`)
	require.NoError(t, h.PlaceOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_IDENTIFIER")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	h, mock := newCustomerHandler(t)
	pid := identifier.Public(identifier.KindProduct, "64a1f0b2c3d4e5f601234567")

	c, rec := orderContext(`{"payment_method":"barter","items":[{"product_id":"` + pid + `","quantity":1}]}`)
	require.NoError(t, h.PlaceOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown payment method")
	assert.NoError(t, mock.ExpectationsWereMet())
}
