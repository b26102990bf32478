package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status estados del ciclo de vida de un pedido.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusInRoute   Status = "IN_ROUTE"
	StatusDelivered Status = "DELIVERED"
)

// ValidStatus indica si s es uno de los cuatro estados conocidos.
// El panel administrativo solo valida pertenencia al enum: cualquier estado
// puede saltar a cualquier otro. La adyacencia estricta aplica únicamente al
// flujo de autoservicio del repartidor (ver DeliveryTransitions).
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInRoute, StatusDelivered:
		return true
	}
	return false
}

// PaymentMethod métodos de pago aceptados.
type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "PIX"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentCash       PaymentMethod = "CASH"
	PaymentBoleto     PaymentMethod = "BOLETO"
)

// ValidPaymentMethod indica si m es uno de los cinco métodos conocidos.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentPix, PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentBoleto:
		return true
	}
	return false
}

// DeliveryTransitions tabla de adyacencia del flujo del repartidor.
// CONFIRMED -> IN_ROUTE -> DELIVERED, sin saltos ni retrocesos.
var DeliveryTransitions = map[Status]Status{
	StatusConfirmed: StatusInRoute,
	StatusInRoute:   StatusDelivered,
}

// CanDeliveryTransition valida una transición del flujo del repartidor.
func CanDeliveryTransition(from, to Status) bool {
	next, ok := DeliveryTransitions[from]
	return ok && next == to
}

// Order pedido de un cliente. Los campos de entrega (nombre, teléfono,
// dirección, ciudad/estado y tarifa) se congelan al crear el pedido a partir
// de la zona elegida y no se rederivan nunca.
type Order struct {
	ID            string
	CustomerID    string
	Status        Status
	PaymentMethod PaymentMethod

	// PaidAt es la única fuente de verdad de "este pedido está pagado".
	// Es independiente del estado: un pedido DELIVERED puede seguir impago.
	PaidAt *time.Time

	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal // invariante: Total == Subtotal + DeliveryFee

	CustomerName  string
	CustomerPhone string
	Street        string
	StreetNumber  string
	Complement    string
	Neighborhood  string
	City          string
	State         string
	ZipCode       string

	DeliveryDate     *time.Time // informativo
	DeliveryPersonID *string    // solo usuarios con rol DELIVERY
	Notes            string     // texto libre, solo impresión

	Items        []*OrderItem
	Installments []*Installment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecomputeTotal recalcula Total a partir del subtotal ALMACENADO (no se
// rederiva de los ítems) más la tarifa de entrega.
func (o *Order) RecomputeTotal() {
	o.Total = o.Subtotal.Add(o.DeliveryFee)
}

// IsBoleto indica si el pedido se paga con boleto en cuotas.
func (o *Order) IsBoleto() bool {
	return o.PaymentMethod == PaymentBoleto
}

// IsPaid indica si el pedido está pagado (PaidAt asignado).
func (o *Order) IsPaid() bool {
	return o.PaidAt != nil
}

// OrderItem línea de un pedido. Precio y cantidad son una foto al momento de
// la compra; inmutables después de crear el pedido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	CreatedAt time.Time
}
