package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// OrderRepository puerto de persistencia para pedidos.
type OrderRepository interface {
	// Create persiste el pedido con sus ítems.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID obtiene el pedido con ítems y cuotas. Devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// Update persiste los campos mutables del pedido: status, payment_method,
	// delivery_fee, total, delivery_date, paid_at, notes, delivery_person_id.
	Update(ctx context.Context, order *entity.Order) error
	// SetPaidAt fija o limpia el timestamp agregado de pago.
	SetPaidAt(ctx context.Context, orderID string, paidAt *time.Time) error
	// List pedidos ordenados por fecha de creación descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	// ListByCustomer pedidos de un cliente.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error)
	// ListByDeliveryPerson pedidos asignados a un repartidor en los estados dados.
	ListByDeliveryPerson(ctx context.Context, deliveryPersonID string, statuses []entity.Status) ([]*entity.Order, error)
	// ListUnpaid pedidos con paid_at nulo, con cuotas cargadas.
	ListUnpaid(ctx context.Context) ([]*entity.Order, error)
	// CountActiveByDeliveryPerson pedidos CONFIRMED o IN_ROUTE aún asignados al repartidor.
	CountActiveByDeliveryPerson(ctx context.Context, deliveryPersonID string) (int, error)
}
