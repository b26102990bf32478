package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowType tipo de movimiento de caja.
type CashFlowType string

const (
	CashFlowIncome  CashFlowType = "INCOME"
	CashFlowExpense CashFlowType = "EXPENSE"
)

// ValidCashFlowType indica si t es INCOME o EXPENSE.
func ValidCashFlowType(t CashFlowType) bool {
	return t == CashFlowIncome || t == CashFlowExpense
}

// CashFlow movimiento del libro de caja. Puede crearse a mano por el equipo
// financiero o como efecto de marcar pagos sobre pedidos y cuotas.
//
// OrderID es una referencia débil (join informativo, no propiedad). Para los
// asientos generados por cuotas de boleto, InstallmentNumber identifica la
// cuota de forma explícita; así el despago localiza y borra el asiento sin
// buscar subcadenas en la descripción.
type CashFlow struct {
	ID                string
	Type              CashFlowType
	Amount            decimal.Decimal
	Description       string
	PaymentMethod     *PaymentMethod // opcional
	PaymentDate       time.Time
	OrderID           *string
	InstallmentNumber *int

	CreatedAt time.Time
	UpdatedAt time.Time
}
