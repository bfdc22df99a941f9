package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. SKU es la clave natural de negocio,
// única en el almacenamiento; ID es el identificador asignado por el storage.
type Product struct {
	ID        string
	SKU       string // clave natural; nunca se modifica en un update
	Name      string
	Category  string // tipo de recubrimiento / categoría comercial
	Price     decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
