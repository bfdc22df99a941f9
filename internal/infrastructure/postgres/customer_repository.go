package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/DataLake-api/internal/domain/entity"
	"github.com/jhoicas/DataLake-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de solo lectura de CustomerRepository: el data
// lake consulta clientes, nunca los escribe.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de clientes. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// GetByCode obtiene un cliente por código. (nil, nil) si no existe.
func (r *CustomerRepo) GetByCode(code string) (*entity.Customer, error) {
	query := `
		SELECT id, code, name, email, created_at
		FROM customers WHERE code = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&c.ID, &c.Code, &c.Name, &c.Email, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by code: %w", err)
	}
	return &c, nil
}
