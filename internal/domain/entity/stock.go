package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el saldo de una serie en una bodega. La clave natural es el
// par (código de serie, bodega); SeriesID es la referencia resuelta durable.
type Stock struct {
	ID          string
	SeriesID    string
	SeriesCode  string // parte de la clave natural; se rellena en lecturas
	WarehouseID string // parte de la clave natural
	Quantity    decimal.Decimal
	Reserved    bool // reservado para un cliente
	UpdatedAt   time.Time
}

// NaturalKey devuelve la clave natural compuesta, como aparece en los reportes.
func (s *Stock) NaturalKey() string {
	return s.SeriesCode + "@" + s.WarehouseID
}
