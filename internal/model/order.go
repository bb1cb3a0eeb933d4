package model

import "time"

// Order status values.  Transitions are enforced by CanTransition:
// PENDING -> PAID -> SHIPPED -> DELIVERED, with CANCELLED reachable from
// PENDING or PAID.  Cancelling restocks the order's items.
const (
    OrderPending   = "PENDING"
    OrderPaid      = "PAID"
    OrderShipped   = "SHIPPED"
    OrderDelivered = "DELIVERED"
    OrderCancelled = "CANCELLED"
)

// Payment method values accepted at checkout.  The gateway round-trip is
// owned by external collaborators; orders only record which method was
// chosen and, once paid, the gateway's reference string.
const (
    PayCard    = "card"
    PayPayPal  = "paypal"
    PayPayHere = "payhere"
    PayCOD     = "cod"
)

// Order records a customer's purchase.  TotalCents is the sum of item
// line totals computed at placement time from then-current prices; it is
// 64-bit so a large cart cannot wrap the total.
//
// Fields:
//  ID            – internal document id (CHAR(24), primary key).
//  PublicID      – derived public identifier (ord_ prefix), indexed.
//  CustomerID    – internal id of the purchasing customer.
//  Status        – one of the Order* constants.
//  TotalCents    – total price in cents for all items.
//  PaymentMethod – one of the Pay* constants.
//  PaymentRef    – external payment reference, set when paid (nullable).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Order struct {
    ID            string     // orders.id
    PublicID      string     // orders.public_id
    CustomerID    string     // orders.customer_id
    Status        string     // orders.status
    TotalCents    uint64     // orders.total_cents
    PaymentMethod string     // orders.payment_method
    PaymentRef    *string    // orders.payment_ref (nullable)
    CreatedAt     time.Time  // orders.created_at
    UpdatedAt     time.Time  // orders.updated_at
}

// OrderItem is one product line inside an order.  UnitPriceCents is the
// price captured at placement; later catalog price changes do not affect
// existing orders.
//
// Fields:
//  ID             – internal document id (CHAR(24), primary key).
//  OrderID        – owning order.
//  ProductID      – purchased product.
//  Quantity       – units purchased.
//  UnitPriceCents – per-unit price in cents at placement time.
//  CreatedAt      – creation timestamp.
type OrderItem struct {
    ID             string    // order_items.id
    OrderID        string    // order_items.order_id
    ProductID      string    // order_items.product_id
    Quantity       uint32    // order_items.quantity
    UnitPriceCents uint32    // order_items.unit_price_cents
    CreatedAt      time.Time // order_items.created_at
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
    switch m {
    case PayCard, PayPayPal, PayPayHere, PayCOD:
        return true
    }
    return false
}

// CanTransition reports whether an order may move from one status to
// another.  Same-status updates are rejected so handlers return a
// conflict instead of silently re-applying side effects.
func CanTransition(from, to string) bool {
    switch from {
    case OrderPending:
        return to == OrderPaid || to == OrderCancelled
    case OrderPaid:
        return to == OrderShipped || to == OrderCancelled
    case OrderShipped:
        return to == OrderDelivered
    }
    return false
}
