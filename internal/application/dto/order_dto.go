package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItem línea del checkout.
type CreateOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest checkout del cliente. La zona fija tarifa y ciudad/estado.
type CreateOrderRequest struct {
	ZoneID        string            `json:"zoneId"`
	PaymentMethod string            `json:"paymentMethod"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Street        string            `json:"street"`
	StreetNumber  string            `json:"streetNumber"`
	Complement    string            `json:"complement"`
	Neighborhood  string            `json:"neighborhood"`
	ZipCode       string            `json:"zipCode"`
	DeliveryDate  *string           `json:"deliveryDate"` // YYYY-MM-DD, opcional
	Notes         string            `json:"notes"`
	Items         []CreateOrderItem `json:"items"`
}

// UpdateOrderRequest PATCH de staff sobre un pedido. Todos los campos son
// independientes; PaidAt y DeliveryDate admiten null explícito para limpiar.
type UpdateOrderRequest struct {
	Status        *string          `json:"status"`
	PaymentMethod *string          `json:"paymentMethod"`
	DeliveryFee   *float64         `json:"deliveryFee"`
	DeliveryDate  Optional[string] `json:"deliveryDate"`
	PaidAt        Optional[string] `json:"paidAt"`
	Notes         *string          `json:"notes"`
}

// AssignDeliveryRequest asignación de repartidor.
type AssignDeliveryRequest struct {
	DeliveryPersonID string `json:"deliveryPersonId"`
}

// InstallmentInput cuota del cronograma de boleto. El número lo asigna la
// posición en el arreglo (1-based), no el cliente.
type InstallmentInput struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"dueDate"` // YYYY-MM-DD
}

// ReplaceInstallmentsRequest reemplazo completo del cronograma.
type ReplaceInstallmentsRequest struct {
	Installments []InstallmentInput `json:"installments"`
}

// PayInstallmentRequest pago o despago de una cuota.
type PayInstallmentRequest struct {
	Paid        *bool  `json:"paid"`
	PaymentDate string `json:"paymentDate"` // YYYY-MM-DD, opcional (default hoy)
}

// DeliveryActionRequest acción de autoservicio del repartidor.
type DeliveryActionRequest struct {
	Action string `json:"action"` // start_route | confirm_delivery
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// InstallmentResponse cuota de boleto.
type InstallmentResponse struct {
	ID      string          `json:"id"`
	Number  int             `json:"installmentNumber"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"dueDate"`
	PaidAt  *time.Time      `json:"paidAt"`
}

// OrderResponse pedido completo con ítems y cuotas.
type OrderResponse struct {
	ID               string                `json:"id"`
	CustomerID       string                `json:"customerId"`
	Status           string                `json:"status"`
	PaymentMethod    string                `json:"paymentMethod"`
	PaidAt           *time.Time            `json:"paidAt"`
	Subtotal         decimal.Decimal       `json:"subtotal"`
	DeliveryFee      decimal.Decimal       `json:"deliveryFee"`
	Total            decimal.Decimal       `json:"total"`
	CustomerName     string                `json:"customerName"`
	CustomerPhone    string                `json:"customerPhone"`
	Street           string                `json:"street"`
	StreetNumber     string                `json:"streetNumber"`
	Complement       string                `json:"complement"`
	Neighborhood     string                `json:"neighborhood"`
	City             string                `json:"city"`
	State            string                `json:"state"`
	ZipCode          string                `json:"zipCode"`
	DeliveryDate     *time.Time            `json:"deliveryDate"`
	DeliveryPersonID *string               `json:"deliveryPersonId"`
	Notes            string                `json:"notes"`
	Items            []OrderItemResponse   `json:"items"`
	Installments     []InstallmentResponse `json:"installments"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// UnpaidOrderResponse pedido impago enriquecido con urgencia.
type UnpaidOrderResponse struct {
	OrderResponse
	UrgencyLevel string  `json:"urgencyLevel"` // overdue | upcoming | normal
	DaysUntilDue int     `json:"daysUntilDue"`
	NextDueDate  *string `json:"nextDueDate"` // YYYY-MM-DD, solo boleto
}

// UnpaidOrdersResponse partición de impagos por urgencia.
type UnpaidOrdersResponse struct {
	Overdue  []UnpaidOrderResponse `json:"overdue"`
	Upcoming []UnpaidOrderResponse `json:"upcoming"`
	Normal   []UnpaidOrderResponse `json:"normal"`
}

// ZoneResponse zona de entrega activa.
type ZoneResponse struct {
	ID    string          `json:"id"`
	City  string          `json:"city"`
	State string          `json:"state"`
	Fee   decimal.Decimal `json:"fee"`
}
