package repository

import (
	"context"
	"database/sql"

	"github.com/nalinda/stockroom/internal/identifier"
	"github.com/nalinda/stockroom/internal/model"
)

// OrderRepo persists orders and their item lines.  Placement and
// cancellation run inside a single transaction together with the stock
// movements, so concurrent checkouts can never oversell.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

const orderCols = "id, public_id, customer_id, status, total_cents, payment_method, payment_ref, created_at, updated_at"

// OrderLine is one requested product/quantity pair at placement time.
type OrderLine struct {
	ProductID string // internal product id
	Quantity  uint32
}

// Place creates a PENDING order for the customer.  For each line it locks
// the product row, verifies stock and price, decrements stock and inserts
// the item.  Any shortfall rolls the whole order back with ErrOutOfStock;
// a missing or inactive product rolls back with ErrNotFound.
func (r *OrderRepo) Place(ctx context.Context, customerID, paymentMethod string, lines []OrderLine) (model.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	orderID, err := identifier.New()
	if err != nil {
		return model.Order{}, err
	}

	var total uint64
	type priced struct {
		line  OrderLine
		price uint32
	}
	items := make([]priced, 0, len(lines))
	for _, ln := range lines {
		var price, stock uint32
		var active bool
		err := tx.QueryRowContext(ctx,
			"SELECT price_cents, stock, is_active FROM products WHERE id=? FOR UPDATE",
			ln.ProductID).Scan(&price, &stock, &active)
		if err == sql.ErrNoRows {
			return model.Order{}, ErrNotFound
		}
		if err != nil {
			return model.Order{}, err
		}
		if !active {
			return model.Order{}, ErrNotFound
		}
		if stock < ln.Quantity {
			return model.Order{}, ErrOutOfStock
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE products SET stock = stock - ?, updated_at=NOW() WHERE id=?",
			ln.Quantity, ln.ProductID); err != nil {
			return model.Order{}, err
		}
		total += uint64(price) * uint64(ln.Quantity)
		items = append(items, priced{line: ln, price: price})
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO orders (id, public_id, customer_id, status, total_cents, payment_method) VALUES (?,?,?,?,?,?)",
		orderID, identifier.Public(identifier.KindOrder, orderID), customerID,
		model.OrderPending, total, paymentMethod); err != nil {
		return model.Order{}, err
	}
	for _, it := range items {
		itemID, err := identifier.New()
		if err != nil {
			return model.Order{}, err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (id, order_id, product_id, quantity, unit_price_cents) VALUES (?,?,?,?,?)",
			itemID, orderID, it.line.ProductID, it.line.Quantity, it.price); err != nil {
			return model.Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, err
	}
	return r.GetByID(ctx, orderID)
}

// GetByID fetches an order by internal id.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (model.Order, error) {
	return r.scanOne(ctx, "SELECT "+orderCols+" FROM orders WHERE id=? LIMIT 1", id)
}

// GetByPublicID fetches an order by its wire-visible identifier.
func (r *OrderRepo) GetByPublicID(ctx context.Context, publicID string) (model.Order, error) {
	return r.scanOne(ctx, "SELECT "+orderCols+" FROM orders WHERE public_id=? LIMIT 1", publicID)
}

// ListByCustomer returns a customer's orders, newest first.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	return r.list(ctx, "SELECT "+orderCols+" FROM orders WHERE customer_id=? ORDER BY created_at DESC", customerID)
}

// ListAll returns orders across all customers, optionally filtered by
// status, newest first.
func (r *OrderRepo) ListAll(ctx context.Context, status string) ([]model.Order, error) {
	if status != "" {
		return r.list(ctx, "SELECT "+orderCols+" FROM orders WHERE status=? ORDER BY created_at DESC", status)
	}
	return r.list(ctx, "SELECT "+orderCols+" FROM orders ORDER BY created_at DESC")
}

// Items returns the item lines of an order.
func (r *OrderRepo) Items(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, order_id, product_id, quantity, unit_price_cents, created_at FROM order_items WHERE order_id=? ORDER BY created_at",
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPriceCents, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// UpdateStatus moves an order along the status machine.  Invalid
// transitions yield ErrConflict.  Cancellation restocks every item line
// in the same transaction as the status change.  paymentRef is recorded
// when moving to PAID and may be nil otherwise.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, to string, paymentRef *string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var current string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM orders WHERE id=? FOR UPDATE", id).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !model.CanTransition(current, to) {
		return ErrConflict
	}

	if to == model.OrderPaid && paymentRef != nil {
		_, err = tx.ExecContext(ctx,
			"UPDATE orders SET status=?, payment_ref=?, updated_at=NOW() WHERE id=?", to, *paymentRef, id)
	} else {
		_, err = tx.ExecContext(ctx,
			"UPDATE orders SET status=?, updated_at=NOW() WHERE id=?", to, id)
	}
	if err != nil {
		return err
	}

	if to == model.OrderCancelled {
		if _, err := tx.ExecContext(ctx,
			`UPDATE products p
			   JOIN order_items oi ON oi.product_id = p.id
			    SET p.stock = p.stock + oi.quantity, p.updated_at = NOW()
			  WHERE oi.order_id = ?`, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.PublicID, &o.CustomerID, &o.Status, &o.TotalCents,
			&o.PaymentMethod, &o.PaymentRef, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) scanOne(ctx context.Context, query string, arg any) (model.Order, error) {
	var o model.Order
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&o.ID, &o.PublicID, &o.CustomerID, &o.Status, &o.TotalCents,
		&o.PaymentMethod, &o.PaymentRef, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Order{}, ErrNotFound
	}
	return o, err
}
