package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
	"github.com/tu-usuario/pedidos-pro/pkg/localdate"
	"github.com/tu-usuario/pedidos-pro/pkg/logger"
)

// CreateOrderUseCase checkout del cliente. Congela sobre el pedido la tarifa
// y ciudad/estado de la zona elegida y el precio de cada producto; descuenta
// stock en la misma transacción (todo o nada).
type CreateOrderUseCase struct {
	tx    TxRunner
	zones repository.DeliveryZoneRepository
	log   *logger.Logger
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(tx TxRunner, zones repository.DeliveryZoneRepository, log *logger.Logger) *CreateOrderUseCase {
	return &CreateOrderUseCase{tx: tx, zones: zones, log: log}
}

// Execute crea el pedido en estado PENDING, impago.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido necesita al menos un ítem", domain.ErrInvalidInput)
	}
	method := entity.PaymentMethod(in.PaymentMethod)
	if !entity.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: paymentMethod %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if in.CustomerName == "" || in.CustomerPhone == "" || in.Street == "" {
		return nil, fmt.Errorf("%w: faltan datos de entrega", domain.ErrInvalidInput)
	}
	for i, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: ítem %d inválido", domain.ErrInvalidInput, i+1)
		}
	}

	zone, err := uc.zones.GetByID(ctx, in.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil || !zone.Active {
		return nil, fmt.Errorf("%w: zona de entrega inexistente o inactiva", domain.ErrInvalidInput)
	}

	var deliveryDate *time.Time
	if in.DeliveryDate != nil && *in.DeliveryDate != "" {
		d, err := localdate.Parse(*in.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: deliveryDate: %v", domain.ErrInvalidInput, err)
		}
		t := d.Midnight()
		deliveryDate = &t
	}

	now := time.Now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		Status:        entity.StatusPending,
		PaymentMethod: method,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Street:        in.Street,
		StreetNumber:  in.StreetNumber,
		Complement:    in.Complement,
		Neighborhood:  in.Neighborhood,
		City:          zone.City,
		State:         zone.State,
		ZipCode:       in.ZipCode,
		DeliveryFee:   zone.Fee,
		DeliveryDate:  deliveryDate,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.tx.RunCheckout(ctx, func(
		ordersRepo repository.OrderRepository,
		productsRepo repository.ProductRepository,
	) error {
		subtotal := decimal.Zero
		for _, item := range in.Items {
			product, err := productsRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.Active {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
			}
			// Chequeo simple de stock al armar el carrito; sin reservas.
			if err := productsRepo.DecrementStock(ctx, product.ID, item.Quantity); err != nil {
				return err
			}
			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			order.Items = append(order.Items, &entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Subtotal:  lineTotal,
				CreatedAt: now,
			})
			subtotal = subtotal.Add(lineTotal)
		}
		order.Subtotal = subtotal
		order.RecomputeTotal()
		return ordersRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("customer_id", customerID).
		Str("zone", zone.City).
		Msg("pedido creado")
	return toOrderResponse(order), nil
}
