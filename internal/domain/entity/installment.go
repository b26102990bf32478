package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment cuota de un pedido pagado con boleto.
// El conjunto de cuotas de un pedido se reemplaza completo (borrar y recrear)
// cuando se edita el cronograma; la acción de pago/despago solo toca PaidAt.
type Installment struct {
	ID      string
	OrderID string
	Number  int // 1-based, contiguo dentro del pedido
	Amount  decimal.Decimal
	DueDate time.Time // medianoche local del día de vencimiento
	PaidAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid indica si la cuota fue pagada.
func (i *Installment) IsPaid() bool {
	return i.PaidAt != nil
}
