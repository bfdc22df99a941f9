package entity

import "time"

// Estados válidos de una orden.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order representa un pedido de un cliente. Number es la clave natural; las
// referencias a cliente, producto y serie se guardan como IDs durables una vez
// resueltas (los códigos se rellenan en lecturas).
type Order struct {
	ID            string
	Number        string // clave natural
	CustomerID    string
	CustomerCode  string
	Status        string
	CreatedDate   time.Time // fecha calendario del pedido, no del registro
	ShippedDate   *time.Time
	DeliveredDate *time.Time
	CancelReason  string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem línea de pedido. Series es opcional; cuando está presente debe
// pertenecer al producto de la línea.
type OrderItem struct {
	ProductID  string
	ProductSKU string
	SeriesID   string // vacío si la línea no fija serie
	SeriesCode string
	Quantity   int
}
