package repository

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// DeliveryZoneRepository puerto de lectura del catálogo de zonas de entrega.
type DeliveryZoneRepository interface {
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.DeliveryZone, error)
	// ListActive zonas activas, para el checkout.
	ListActive(ctx context.Context) ([]*entity.DeliveryZone, error)
}
