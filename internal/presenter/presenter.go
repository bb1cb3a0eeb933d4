// Package presenter builds the external-facing shape of internal
// entities.  Every view is an explicit allow-list: internal document ids
// never appear under any key, references are replaced by derived public
// ids, PII passes through the masking functions, and display-only values
// (stock flags, primary image, item counts) are computed here at
// presentation time rather than stored.  All transforms are pure.
package presenter

import (
    "time"

    "github.com/nalinda/stockroom/internal/identifier"
    "github.com/nalinda/stockroom/internal/model"
)

// ProductView is a product as exposed over the API.
type ProductView struct {
    ID           string    `json:"id"`
    CategoryID   string    `json:"category_id"`
    Name         string    `json:"name"`
    SKU          string    `json:"sku"`
    Description  string    `json:"description"`
    PriceCents   uint32    `json:"price_cents"`
    Currency     string    `json:"currency"`
    Stock        uint32    `json:"stock"`
    InStock      bool      `json:"in_stock"`
    PrimaryImage string    `json:"primary_image,omitempty"`
    Images       []string  `json:"images,omitempty"`
    IsActive     bool      `json:"is_active"`
    CreatedAt    time.Time `json:"created_at"`
}

// CategoryView is a category as exposed over the API.  ParentID is the
// parent's public id, omitted for root categories.
type CategoryView struct {
    ID         string `json:"id"`
    ParentID   string `json:"parent_id,omitempty"`
    Name       string `json:"name"`
    Slug       string `json:"slug"`
    ItemsCount int    `json:"items_count"`
}

// CustomerView is a customer profile as exposed to admins.  Email and
// phone are masked; the full values never leave the service in admin
// listings.
type CustomerView struct {
    ID        string    `json:"id"`
    UserID    string    `json:"user_id"`
    FirstName string    `json:"first_name"`
    LastName  string    `json:"last_name"`
    Email     string    `json:"email"`
    Phone     string    `json:"phone,omitempty"`
    City      string    `json:"city,omitempty"`
    Country   string    `json:"country,omitempty"`
    IsActive  bool      `json:"is_active"`
    CreatedAt time.Time `json:"created_at"`
}

// ProfileView is a customer's own profile.  Unlike CustomerView it shows
// the unmasked contact details, since the subject is reading their own
// record.
type ProfileView struct {
    ID          string `json:"id"`
    Email       string `json:"email"`
    FirstName   string `json:"first_name"`
    LastName    string `json:"last_name"`
    Phone       string `json:"phone,omitempty"`
    AddressLine string `json:"address_line,omitempty"`
    City        string `json:"city,omitempty"`
    Country     string `json:"country,omitempty"`
}

// OrderItemView is one line of an order.  The line total is 64-bit so
// price times quantity cannot wrap.
type OrderItemView struct {
    ProductID      string `json:"product_id"`
    Quantity       uint32 `json:"quantity"`
    UnitPriceCents uint32 `json:"unit_price_cents"`
    LineTotalCents uint64 `json:"line_total_cents"`
}

// OrderView is an order as exposed over the API.
type OrderView struct {
    ID            string          `json:"id"`
    CustomerID    string          `json:"customer_id"`
    Status        string          `json:"status"`
    TotalCents    uint64          `json:"total_cents"`
    PaymentMethod string          `json:"payment_method"`
    PaymentRef    string          `json:"payment_ref,omitempty"`
    ItemsCount    int             `json:"items_count"`
    Items         []OrderItemView `json:"items,omitempty"`
    CreatedAt     time.Time       `json:"created_at"`
}

// Product builds the external view of a product.
func Product(p model.Product) ProductView {
    v := ProductView{
        ID:          identifier.Public(identifier.KindProduct, p.ID),
        CategoryID:  identifier.Public(identifier.KindCategory, p.CategoryID),
        Name:        p.Name,
        SKU:         p.SKU,
        Description: p.Description,
        PriceCents:  p.PriceCents,
        Currency:    p.Currency,
        Stock:       p.Stock,
        InStock:     p.Stock > 0,
        IsActive:    p.IsActive,
        CreatedAt:   p.CreatedAt,
    }
    if len(p.Images) > 0 {
        v.PrimaryImage = p.Images[0]
        v.Images = p.Images
    }
    return v
}

// Products maps a slice of products to views, preserving order.
func Products(ps []model.Product) []ProductView {
    out := make([]ProductView, 0, len(ps))
    for _, p := range ps {
        out = append(out, Product(p))
    }
    return out
}

// Category builds the external view of a category.  itemsCount is the
// number of products currently in the category, counted by the caller.
func Category(c model.Category, itemsCount int) CategoryView {
    v := CategoryView{
        ID:         identifier.Public(identifier.KindCategory, c.ID),
        Name:       c.Name,
        Slug:       c.Slug,
        ItemsCount: itemsCount,
    }
    if c.ParentID != nil {
        v.ParentID = identifier.Public(identifier.KindCategory, *c.ParentID)
    }
    return v
}

// Customer builds the admin-facing view of a customer.  The email and
// active flag come from the linked user record; email and phone are
// masked before inclusion.
func Customer(cu model.Customer, u model.User) CustomerView {
    return CustomerView{
        ID:        identifier.Public(identifier.KindCustomer, cu.ID),
        UserID:    identifier.Public(identifier.KindUser, cu.UserID),
        FirstName: cu.FirstName,
        LastName:  cu.LastName,
        Email:     MaskEmail(u.Email),
        Phone:     maskIfSet(cu.Phone),
        City:      cu.City,
        Country:   cu.Country,
        IsActive:  u.IsActive,
        CreatedAt: cu.CreatedAt,
    }
}

// Profile builds a customer's own, unmasked profile view.
func Profile(cu model.Customer, u model.User) ProfileView {
    return ProfileView{
        ID:          identifier.Public(identifier.KindCustomer, cu.ID),
        Email:       u.Email,
        FirstName:   cu.FirstName,
        LastName:    cu.LastName,
        Phone:       cu.Phone,
        AddressLine: cu.AddressLine,
        City:        cu.City,
        Country:     cu.Country,
    }
}

// Order builds the external view of an order with its item lines.  Pass a
// nil items slice for list responses that only need the count-free
// summary shape.
func Order(o model.Order, items []model.OrderItem) OrderView {
    v := OrderView{
        ID:            identifier.Public(identifier.KindOrder, o.ID),
        CustomerID:    identifier.Public(identifier.KindCustomer, o.CustomerID),
        Status:        o.Status,
        TotalCents:    o.TotalCents,
        PaymentMethod: o.PaymentMethod,
        ItemsCount:    len(items),
        CreatedAt:     o.CreatedAt,
    }
    if o.PaymentRef != nil {
        v.PaymentRef = *o.PaymentRef
    }
    for _, it := range items {
        v.Items = append(v.Items, OrderItemView{
            ProductID:      identifier.Public(identifier.KindProduct, it.ProductID),
            Quantity:       it.Quantity,
            UnitPriceCents: it.UnitPriceCents,
            LineTotalCents: uint64(it.Quantity) * uint64(it.UnitPriceCents),
        })
    }
    return v
}

func maskIfSet(phone string) string {
    if phone == "" {
        return ""
    }
    return MaskPhone(phone)
}
