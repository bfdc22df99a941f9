package repository

import "github.com/jhoicas/DataLake-api/internal/domain/entity"

// CustomerRepository puerto de solo lectura: los clientes son externos al data
// lake y nunca se crean desde una carga. GetByCode devuelve (nil, nil) si no existe.
type CustomerRepository interface {
	GetByCode(code string) (*entity.Customer, error)
}
