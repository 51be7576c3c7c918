package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// Page límites de paginación comunes a los listados.
type Page struct {
	Limit  int
	Offset int
}

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	Role     string
	IsActive *bool
	Search   string
	Page
}

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
}
