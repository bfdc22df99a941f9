package entity

import "time"

// Roles válidos para User. La carga al data lake exige admin.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User representa un usuario del panel administrativo.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operador
	Active       bool
	CreatedAt    time.Time
}
