package datalake

import (
	"strings"

	"github.com/jhoicas/DataLake-api/internal/domain"
)

// EntityType tipo de entidad cargable al data lake.
type EntityType string

// Tipos soportados. El orden products → series → stocks → orders es el orden
// de carga recomendado: un registro solo puede referenciar padres ya
// persistidos o aceptados antes en el mismo lote.
const (
	EntityProducts EntityType = "products"
	EntitySeries   EntityType = "series"
	EntityStocks   EntityType = "stocks"
	EntityOrders   EntityType = "orders"
)

// ParseEntityType valida el tag declarado por el caller.
// Devuelve domain.ErrUnknownEntityType si no es uno de los cuatro tipos.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(strings.ToLower(strings.TrimSpace(s))) {
	case EntityProducts:
		return EntityProducts, nil
	case EntitySeries:
		return EntitySeries, nil
	case EntityStocks:
		return EntityStocks, nil
	case EntityOrders:
		return EntityOrders, nil
	}
	return "", domain.ErrUnknownEntityType
}
