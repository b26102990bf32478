package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryZone mapeo ciudad/estado -> tarifa de entrega. Se consulta solo al
// crear el pedido; cambios posteriores de tarifa nunca afectan pedidos ya
// creados (la tarifa queda congelada en el pedido).
type DeliveryZone struct {
	ID        string
	City      string
	State     string
	Fee       decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
