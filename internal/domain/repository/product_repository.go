package repository

import "github.com/jhoicas/DataLake-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetBySKU devuelve (nil, nil) cuando el SKU no existe.
type ProductRepository interface {
	GetBySKU(sku string) (*entity.Product, error)
	// Upsert inserta o actualiza por SKU en una sola operación atómica.
	// Devuelve true si la fila fue creada, false si fue actualizada.
	Upsert(product *entity.Product) (created bool, err error)
}
