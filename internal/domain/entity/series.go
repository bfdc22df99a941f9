package entity

import "time"

// Series representa una serie (lote de producción) de un producto.
// Code es la clave natural; ProductID guarda la referencia resuelta como
// identificador durable (ProductSKU se rellena en lecturas, para reportes).
type Series struct {
	ID             string
	Code           string // clave natural
	ProductID      string
	ProductSKU     string
	Name           string
	ProductionDate *time.Time // fecha calendario, sin hora
	ExpireDate     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
