package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/DataLake-api/internal/domain/entity"
	"github.com/jhoicas/DataLake-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Upsert escribe cabecera y líneas; debe ejecutarse atado a una transacción
// (ver TxRunner) para que la orden se persista completa o no se persista.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByNumber obtiene una orden con sus líneas. (nil, nil) si no existe.
func (r *OrderRepo) GetByNumber(number string) (*entity.Order, error) {
	query := `
		SELECT o.id, o.number, o.customer_id, c.code, o.status, o.created_date,
		       o.shipped_date, o.delivered_date, o.cancel_reason, o.created_at, o.updated_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.number = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, number).Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.CustomerCode, &o.Status, &o.CreatedDate,
		&o.ShippedDate, &o.DeliveredDate, &o.CancelReason, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by number: %w", err)
	}

	items, err := r.listItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) listItems(orderID string) ([]entity.OrderItem, error) {
	query := `
		SELECT i.product_id, p.sku, i.series_id, COALESCE(s.code, ''), i.quantity
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		LEFT JOIN series s ON s.id = i.series_id
		WHERE i.order_id = $1
		ORDER BY i.position`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var (
			item     entity.OrderItem
			seriesID *string
		)
		if err := rows.Scan(&item.ProductID, &item.ProductSKU, &seriesID, &item.SeriesCode, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if seriesID != nil {
			item.SeriesID = *seriesID
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Upsert inserta o actualiza la orden por número y reescribe sus líneas.
// La clave natural y created_at/created_date se conservan en updates.
func (r *OrderRepo) Upsert(order *entity.Order) (bool, error) {
	query := `
		INSERT INTO orders (id, number, customer_id, status, created_date, shipped_date, delivered_date, cancel_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (number) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			status = EXCLUDED.status,
			shipped_date = EXCLUDED.shipped_date,
			delivered_date = EXCLUDED.delivered_date,
			cancel_reason = EXCLUDED.cancel_reason,
			updated_at = EXCLUDED.updated_at
		RETURNING id, (xmax = 0)`
	var (
		orderID string
		created bool
	)
	err := r.q.QueryRow(context.Background(), query,
		order.ID, order.Number, order.CustomerID, order.Status, order.CreatedDate,
		order.ShippedDate, order.DeliveredDate, order.CancelReason, order.CreatedAt, order.UpdatedAt,
	).Scan(&orderID, &created)
	if err != nil {
		return false, fmt.Errorf("upsert order: %w", err)
	}

	// Las líneas se reemplazan completas: el upload es la fuente de verdad.
	if _, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return false, fmt.Errorf("delete order items: %w", err)
	}
	insertItem := `
		INSERT INTO order_items (order_id, position, product_id, series_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for i, item := range order.Items {
		var seriesID *string
		if item.SeriesID != "" {
			seriesID = &item.SeriesID
		}
		if _, err := r.q.Exec(context.Background(), insertItem, orderID, i, item.ProductID, seriesID, item.Quantity); err != nil {
			return false, fmt.Errorf("insert order item %d: %w", i, err)
		}
	}
	return created, nil
}
