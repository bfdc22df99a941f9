package datalake

import (
	"context"

	"github.com/jhoicas/DataLake-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un OrderRepository atado a una transacción y hace
// Commit o Rollback. Las órdenes escriben cabecera y líneas como una unidad;
// los demás tipos se aplican con un upsert de una sola sentencia y no lo
// necesitan.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}
