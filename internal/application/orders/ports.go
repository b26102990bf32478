package orders

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repos atados a
// la tx. Las secuencias multi-paso de pago (cuota + libro de caja + paid_at
// agregado) deben ser atómicas: un lector nunca ve un estado a medio aplicar.
type TxRunner interface {
	// Run transacción simple.
	Run(ctx context.Context, fn func(
		orders repository.OrderRepository,
		installments repository.InstallmentRepository,
		cashflow repository.CashFlowRepository,
	) error) error

	// RunWithOrderLock igual que Run, pero toma primero un advisory lock por
	// pedido. Dos pagos/despagos concurrentes sobre cuotas del mismo pedido
	// quedarían en carrera en el chequeo "¿todas pagadas?"; el lock los
	// serializa.
	RunWithOrderLock(ctx context.Context, orderID string, fn func(
		orders repository.OrderRepository,
		installments repository.InstallmentRepository,
		cashflow repository.CashFlowRepository,
	) error) error

	// RunCheckout transacción de creación de pedido: inserción más descuento
	// de stock, todo o nada.
	RunCheckout(ctx context.Context, fn func(
		orders repository.OrderRepository,
		products repository.ProductRepository,
	) error) error
}
