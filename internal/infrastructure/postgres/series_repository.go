package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/DataLake-api/internal/domain/entity"
	"github.com/jhoicas/DataLake-api/internal/domain/repository"
)

var _ repository.SeriesRepository = (*SeriesRepo)(nil)

// SeriesRepo implementación del puerto SeriesRepository sobre PostgreSQL
// (usable con pool o tx).
type SeriesRepo struct {
	q Querier
}

// NewSeriesRepository construye el adaptador de series. Pasar pool o tx (Querier).
func NewSeriesRepository(q Querier) *SeriesRepo {
	return &SeriesRepo{q: q}
}

// GetByCode obtiene una serie por código, con el SKU del producto dueño
// resuelto por join. (nil, nil) si no existe.
func (r *SeriesRepo) GetByCode(code string) (*entity.Series, error) {
	query := `
		SELECT s.id, s.code, s.product_id, p.sku, s.name, s.production_date, s.expire_date, s.created_at, s.updated_at
		FROM series s
		JOIN products p ON p.id = s.product_id
		WHERE s.code = $1`
	var s entity.Series
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&s.ID, &s.Code, &s.ProductID, &s.ProductSKU, &s.Name,
		&s.ProductionDate, &s.ExpireDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get series by code: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza por código de serie en una sola sentencia.
func (r *SeriesRepo) Upsert(series *entity.Series) (bool, error) {
	query := `
		INSERT INTO series (id, code, product_id, name, production_date, expire_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO UPDATE SET
			product_id = EXCLUDED.product_id,
			name = EXCLUDED.name,
			production_date = EXCLUDED.production_date,
			expire_date = EXCLUDED.expire_date,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`
	var created bool
	err := r.q.QueryRow(context.Background(), query,
		series.ID, series.Code, series.ProductID, series.Name,
		series.ProductionDate, series.ExpireDate, series.CreatedAt, series.UpdatedAt,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert series: %w", err)
	}
	return created, nil
}
