// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderPlacedEvent is published when a customer's order is created.  It
// carries only public identifiers and enough detail for downstream
// consumers to log, notify, or trigger fulfilment without querying the
// primary database.
type OrderPlacedEvent struct {
    OrderID       string `json:"order_id"`    // public id (ord_...)
    CustomerID    string `json:"customer_id"` // public id (cus_...)
    Status        string `json:"status"`
    TotalCents    uint64 `json:"total_cents"`
    PaymentMethod string `json:"payment_method"`
    ItemsCount    int    `json:"items_count"`
    PlacedAt      string `json:"placed_at"`
}
