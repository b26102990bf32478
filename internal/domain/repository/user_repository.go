package repository

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail devuelve (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// SetRole cambia el rol del usuario (roster de repartidores).
	SetRole(ctx context.Context, id, role string) error
	// ListByRole usuarios con el rol dado.
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
}
