package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
)

// CashFlowFilter filtros del listado de caja.
type CashFlowFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Type     *entity.CashFlowType
	// Search busca en la descripción y en nombre/teléfono del cliente del
	// pedido enlazado (si lo hay).
	Search string
}

// CashFlowRepository puerto de persistencia del libro de caja.
type CashFlowRepository interface {
	Create(ctx context.Context, entry *entity.CashFlow) error
	Update(ctx context.Context, entry *entity.CashFlow) error
	Delete(ctx context.Context, id string) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.CashFlow, error)
	List(ctx context.Context, filter CashFlowFilter) ([]*entity.CashFlow, error)
	// GetOrderIncome asiento agregado del pedido (order_id asignado,
	// installment_number nulo). Devuelve (nil, nil) si no existe.
	GetOrderIncome(ctx context.Context, orderID string) (*entity.CashFlow, error)
	// GetInstallmentEntry asiento de una cuota concreta. Devuelve (nil, nil) si no existe.
	GetInstallmentEntry(ctx context.Context, orderID string, installmentNumber int) (*entity.CashFlow, error)
	// DeleteByOrder borra todos los asientos enlazados al pedido.
	DeleteByOrder(ctx context.Context, orderID string) error
	// DeleteByInstallment borra el asiento de la cuota (orderID, número).
	DeleteByInstallment(ctx context.Context, orderID string, installmentNumber int) error
}
