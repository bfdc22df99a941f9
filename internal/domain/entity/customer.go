package entity

import "time"

// Customer representa un cliente. Los clientes son una entidad externa al data
// lake: el pipeline solo los consulta por código, nunca los crea ni modifica.
type Customer struct {
	ID        string
	Code      string // clave natural
	Name      string
	Email     string
	CreatedAt time.Time
}
