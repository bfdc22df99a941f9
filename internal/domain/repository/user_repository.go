package repository

import "github.com/jhoicas/DataLake-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (panel admin).
type UserRepository interface {
	FindByEmail(email string) (*entity.User, error)
	Create(user *entity.User) error
}
