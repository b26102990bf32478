package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCashFlowRequest asiento manual de caja. Amount acepta número o string
// (decimal.Decimal deserializa ambos).
type CreateCashFlowRequest struct {
	Type          string          `json:"type"` // INCOME | EXPENSE
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	PaymentMethod *string         `json:"paymentMethod"`
	PaymentDate   string          `json:"paymentDate"` // YYYY-MM-DD, opcional (default hoy)
	OrderID       *string         `json:"orderId"`
}

// UpdateCashFlowRequest PATCH parcial de un asiento.
type UpdateCashFlowRequest struct {
	Type          *string          `json:"type"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   *string          `json:"description"`
	PaymentMethod Optional[string] `json:"paymentMethod"`
	PaymentDate   *string          `json:"paymentDate"`
}

// CashFlowResponse asiento de caja.
type CashFlowResponse struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	PaymentMethod     *string         `json:"paymentMethod"`
	PaymentDate       time.Time       `json:"paymentDate"`
	OrderID           *string         `json:"orderId"`
	InstallmentNumber *int            `json:"installmentNumber"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// CashFlowSummary totales del período filtrado.
type CashFlowSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"` // TotalIncome - TotalExpense
}

// CashFlowListResponse asientos más resumen.
type CashFlowListResponse struct {
	Entries []CashFlowResponse `json:"entries"`
	Summary CashFlowSummary    `json:"summary"`
}
