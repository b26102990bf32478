package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// InstallmentRepository puerto de persistencia para cuotas de boleto.
type InstallmentRepository interface {
	Create(ctx context.Context, inst *entity.Installment) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Installment, error)
	// ListByOrder cuotas de un pedido ordenadas por número.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Installment, error)
	// DeleteByOrder borra todas las cuotas del pedido (el cronograma se
	// reemplaza completo, nunca se parchea cuota a cuota).
	DeleteByOrder(ctx context.Context, orderID string) error
	// SetPaidAt fija o limpia el pago de una cuota.
	SetPaidAt(ctx context.Context, installmentID string, paidAt *time.Time) error
}
