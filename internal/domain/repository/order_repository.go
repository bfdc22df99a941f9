package repository

import "github.com/jhoicas/DataLake-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order.
// GetByNumber devuelve (nil, nil) cuando el número no existe.
type OrderRepository interface {
	GetByNumber(number string) (*entity.Order, error)
	// Upsert inserta o actualiza la orden y sus líneas por número de orden.
	// Cabecera y líneas se aplican como una unidad: o se persisten todas o
	// ninguna. Devuelve true si la orden fue creada.
	Upsert(order *entity.Order) (created bool, err error)
}
