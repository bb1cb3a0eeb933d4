package presenter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalinda/stockroom/internal/identifier"
	"github.com/nalinda/stockroom/internal/model"
)

const (
	productID  = "64a1f0b2c3d4e5f601234567"
	categoryID = "64a1f0b2c3d4e5f601234568"
	customerID = "64a1f0b2c3d4e5f601234569"
	userID     = "64a1f0b2c3d4e5f60123456a"
	orderID    = "64a1f0b2c3d4e5f60123456b"
)

func TestMaskEmail(t *testing.T) {
	// A two-character local part keeps both characters.
	assert.Equal(t, "ab***@example.com", MaskEmail("ab@example.com"))
	assert.Equal(t, "ab***@example.com", MaskEmail("abcdef@example.com"))
	assert.Equal(t, "jo***@shop.lk", MaskEmail("john.doe@shop.lk"))
	// Single-character local parts and malformed addresses are masked entirely.
	assert.Equal(t, "***@x.io", MaskEmail("a@x.io"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
	assert.Equal(t, "***", MaskEmail(""))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "123***90", MaskPhone("1234567890"))
	assert.Equal(t, "947***67", MaskPhone("+94 (77) 123-4567"))
	assert.Equal(t, "***", MaskPhone("12345"))
	assert.Equal(t, "***", MaskPhone(""))
}

func TestProductView(t *testing.T) {
	p := model.Product{
		ID:         productID,
		CategoryID: categoryID,
		Name:       "Wireless Mouse",
		SKU:        "WM-001",
		PriceCents: 4999,
		Currency:   "USD",
		Stock:      3,
		Images:     []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	v := Product(p)

	assert.Equal(t, identifier.Public(identifier.KindProduct, productID), v.ID)
	assert.Equal(t, identifier.Public(identifier.KindCategory, categoryID), v.CategoryID)
	assert.True(t, v.InStock)
	assert.Equal(t, "https://cdn.example.com/a.jpg", v.PrimaryImage)

	p.Stock = 0
	assert.False(t, Product(p).InStock)
}

func TestProductViewNeverLeaksInternalID(t *testing.T) {
	p := model.Product{ID: productID, CategoryID: categoryID, Name: "X"}
	raw, err := json.Marshal(Product(p))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), productID)
	assert.NotContains(t, string(raw), categoryID)
}

func TestCategoryView(t *testing.T) {
	parent := categoryID
	c := model.Category{ID: productID, ParentID: &parent, Name: "Mice", Slug: "mice"}
	v := Category(c, 7)
	assert.Equal(t, identifier.Public(identifier.KindCategory, parent), v.ParentID)
	assert.Equal(t, 7, v.ItemsCount)

	root := Category(model.Category{ID: productID, Name: "Hardware", Slug: "hardware"}, 0)
	assert.Empty(t, root.ParentID)
}

func TestCustomerViewMasksPII(t *testing.T) {
	cu := model.Customer{ID: customerID, UserID: userID, FirstName: "Jane", Phone: "1234567890"}
	u := model.User{ID: userID, Email: "jane.doe@example.com", IsActive: true}
	v := Customer(cu, u)

	assert.Equal(t, "ja***@example.com", v.Email)
	assert.Equal(t, "123***90", v.Phone)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	s := string(raw)
	assert.NotContains(t, s, customerID)
	assert.NotContains(t, s, userID)
	assert.NotContains(t, s, "jane.doe@example.com")
	assert.NotContains(t, s, "1234567890")
}

func TestProfileViewShowsOwnData(t *testing.T) {
	cu := model.Customer{ID: customerID, UserID: userID, FirstName: "Jane", Phone: "1234567890"}
	u := model.User{ID: userID, Email: "jane.doe@example.com"}
	v := Profile(cu, u)
	assert.Equal(t, "jane.doe@example.com", v.Email)
	assert.Equal(t, "1234567890", v.Phone)
	assert.True(t, strings.HasPrefix(v.ID, "cus_"))
}

func TestOrderView(t *testing.T) {
	ref := "pay_abc123"
	o := model.Order{
		ID: orderID, CustomerID: customerID, Status: model.OrderPaid,
		TotalCents: 10998, PaymentMethod: model.PayCard, PaymentRef: &ref,
	}
	items := []model.OrderItem{
		{OrderID: orderID, ProductID: productID, Quantity: 2, UnitPriceCents: 4999},
		{OrderID: orderID, ProductID: categoryID, Quantity: 1, UnitPriceCents: 1000},
	}
	v := Order(o, items)

	assert.Equal(t, 2, v.ItemsCount)
	assert.Equal(t, "pay_abc123", v.PaymentRef)
	require.Len(t, v.Items, 2)
	assert.Equal(t, uint64(9998), v.Items[0].LineTotalCents)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), orderID)
	assert.NotContains(t, string(raw), productID)
}

func TestOrderViewLineTotalDoesNotWrap(t *testing.T) {
	// 5000 units at 10,000.00 each exceeds what 32 bits can hold.
	o := model.Order{ID: orderID, CustomerID: customerID, Status: model.OrderPending,
		TotalCents: 5_000_000_000, PaymentMethod: model.PayCOD}
	items := []model.OrderItem{
		{OrderID: orderID, ProductID: productID, Quantity: 5000, UnitPriceCents: 1_000_000},
	}
	v := Order(o, items)

	require.Len(t, v.Items, 1)
	assert.Equal(t, uint64(5_000_000_000), v.Items[0].LineTotalCents)
	assert.Equal(t, uint64(5_000_000_000), v.TotalCents)
}
