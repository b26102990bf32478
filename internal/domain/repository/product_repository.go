package repository

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// ProductRepository puerto mínimo del catálogo para el checkout.
type ProductRepository interface {
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// DecrementStock descuenta qty del stock. Retorna domain.ErrInsufficientStock
	// si no hay unidades suficientes.
	DecrementStock(ctx context.Context, productID string, qty int) error
}
