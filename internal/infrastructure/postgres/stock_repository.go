package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/DataLake-api/internal/domain/entity"
	"github.com/jhoicas/DataLake-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL
// (usable con pool o tx). La clave natural (código de serie, bodega) se
// resuelve por join contra series.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo de una serie en una bodega. (nil, nil) si no existe.
func (r *StockRepo) Get(seriesCode, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT st.id, st.series_id, s.code, st.warehouse_id, st.quantity, st.reserved, st.updated_at
		FROM stocks st
		JOIN series s ON s.id = st.series_id
		WHERE s.code = $1 AND st.warehouse_id = $2`
	var st entity.Stock
	err := r.q.QueryRow(context.Background(), query, seriesCode, warehouseID).Scan(
		&st.ID, &st.SeriesID, &st.SeriesCode, &st.WarehouseID,
		&st.Quantity, &st.Reserved, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &st, nil
}

// Upsert inserta o actualiza el saldo por (serie, bodega) en una sola
// sentencia: lectura-modificación-escritura atómica por clave natural, de
// modo que cargas concurrentes sobre la misma clave no se entremezclan.
func (r *StockRepo) Upsert(stock *entity.Stock) (bool, error) {
	query := `
		INSERT INTO stocks (id, series_id, warehouse_id, quantity, reserved, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (series_id, warehouse_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			reserved = EXCLUDED.reserved,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`
	var created bool
	err := r.q.QueryRow(context.Background(), query,
		stock.ID, stock.SeriesID, stock.WarehouseID,
		stock.Quantity, stock.Reserved, stock.UpdatedAt,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert stock: %w", err)
	}
	return created, nil
}
