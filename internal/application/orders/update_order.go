package orders

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/permission"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
	"github.com/tu-usuario/pedidos-pro/pkg/localdate"
	"github.com/tu-usuario/pedidos-pro/pkg/logger"
)

// UpdateOrderUseCase orquesta el PATCH de staff sobre un pedido: valida los
// campos, aplica la restricción de campos del rol financiero y dispara los
// efectos sobre el libro de caja cuando cambia el estado de pago.
//
// El estado admite cualquier valor del enum sin chequear adyacencia; la
// máquina estricta vive en el flujo del repartidor (DeliveryUseCase).
type UpdateOrderUseCase struct {
	tx    TxRunner
	perms permission.Resolver
	log   *logger.Logger
}

// NewUpdateOrderUseCase construye el caso de uso.
func NewUpdateOrderUseCase(tx TxRunner, perms permission.Resolver, log *logger.Logger) *UpdateOrderUseCase {
	return &UpdateOrderUseCase{tx: tx, perms: perms, log: log}
}

// Execute aplica el patch. El método de pago "efectivo" para decidir los
// efectos de caja es el valor POST-patch: si paymentMethod y paidAt cambian
// en la misma llamada, gobierna el método nuevo.
func (uc *UpdateOrderUseCase) Execute(ctx context.Context, actorRole, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	caps := uc.perms.Resolve(actorRole)
	if !caps.CanEditOrders {
		return nil, domain.ErrForbidden
	}

	// El rol financiero queda restringido a campos de pago: status, tarifa y
	// fecha de entrega se descartan EN SILENCIO, no es un error duro.
	if actorRole == entity.RoleFinancial {
		in.Status = nil
		in.DeliveryFee = nil
		in.DeliveryDate = dto.Optional[string]{}
	}

	// Validaciones fuera de la transacción.
	var newStatus *entity.Status
	if in.Status != nil {
		s := entity.Status(*in.Status)
		if !entity.ValidStatus(s) {
			return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, *in.Status)
		}
		newStatus = &s
	}
	var newMethod *entity.PaymentMethod
	if in.PaymentMethod != nil {
		m := entity.PaymentMethod(*in.PaymentMethod)
		if !entity.ValidPaymentMethod(m) {
			return nil, fmt.Errorf("%w: paymentMethod %q", domain.ErrInvalidInput, *in.PaymentMethod)
		}
		newMethod = &m
	}
	if in.DeliveryFee != nil && (math.IsNaN(*in.DeliveryFee) || math.IsInf(*in.DeliveryFee, 0)) {
		return nil, fmt.Errorf("%w: deliveryFee no es un número finito", domain.ErrInvalidInput)
	}
	var deliveryDate *time.Time
	if in.DeliveryDate.Set && in.DeliveryDate.Valid {
		d, err := localdate.Parse(in.DeliveryDate.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: deliveryDate: %v", domain.ErrInvalidInput, err)
		}
		t := d.Midnight()
		deliveryDate = &t
	}
	var paidAt *time.Time
	if in.PaidAt.Set && in.PaidAt.Valid {
		d, err := localdate.Parse(in.PaidAt.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: paidAt: %v", domain.ErrInvalidInput, err)
		}
		t := d.Midnight()
		paidAt = &t
	}

	var resp *dto.OrderResponse
	err := uc.tx.RunWithOrderLock(ctx, orderID, func(
		ordersRepo repository.OrderRepository,
		_ repository.InstallmentRepository,
		cashRepo repository.CashFlowRepository,
	) error {
		order, err := ordersRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		if newStatus != nil {
			order.Status = *newStatus
		}
		if newMethod != nil {
			order.PaymentMethod = *newMethod
		}
		if in.DeliveryFee != nil {
			// El total se recalcula sobre el subtotal ALMACENADO.
			order.DeliveryFee = decimal.NewFromFloat(*in.DeliveryFee)
			order.RecomputeTotal()
		}
		if in.DeliveryDate.Set {
			order.DeliveryDate = deliveryDate
		}
		if in.Notes != nil {
			order.Notes = *in.Notes
		}

		if in.PaidAt.Set {
			if err := uc.applyPaidAt(ctx, cashRepo, order, paidAt); err != nil {
				return err
			}
		}

		order.UpdatedAt = time.Now()
		if err := ordersRepo.Update(ctx, order); err != nil {
			return err
		}
		resp = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", orderID).Str("actor_role", actorRole).Msg("pedido actualizado")
	return resp, nil
}

// applyPaidAt muta el paid_at agregado y su reflejo en el libro de caja.
// Para pedidos BOLETO esta capa NO toca la caja: los asientos de boleto son
// propiedad exclusiva del flujo de cuotas.
func (uc *UpdateOrderUseCase) applyPaidAt(ctx context.Context, cashRepo repository.CashFlowRepository, order *entity.Order, paidAt *time.Time) error {
	order.PaidAt = paidAt
	if order.IsBoleto() {
		return nil
	}

	if paidAt == nil {
		return cashRepo.DeleteByOrder(ctx, order.ID)
	}

	existing, err := cashRepo.GetOrderIncome(ctx, order.ID)
	if err != nil {
		return err
	}
	method := order.PaymentMethod
	if existing != nil {
		// Upsert: ya hay asiento para este pedido, se actualizan método y fecha.
		existing.PaymentMethod = &method
		existing.PaymentDate = *paidAt
		existing.UpdatedAt = time.Now()
		return cashRepo.Update(ctx, existing)
	}
	now := time.Now()
	entry := &entity.CashFlow{
		ID:            uuid.New().String(),
		Type:          entity.CashFlowIncome,
		Amount:        order.Total,
		Description:   fmt.Sprintf("Pago del pedido #%s", shortOrderID(order.ID)),
		PaymentMethod: &method,
		PaymentDate:   *paidAt,
		OrderID:       &order.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return cashRepo.Create(ctx, entry)
}

// Get devuelve un pedido con cuotas. Staff con CanViewOrders o el dueño.
func (uc *UpdateOrderUseCase) Get(ctx context.Context, actorID, actorRole, orderID string) (*dto.OrderResponse, error) {
	var resp *dto.OrderResponse
	err := uc.tx.Run(ctx, func(ordersRepo repository.OrderRepository, _ repository.InstallmentRepository, _ repository.CashFlowRepository) error {
		order, err := ordersRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		caps := uc.perms.Resolve(actorRole)
		if !caps.CanViewOrders && order.CustomerID != actorID {
			return domain.ErrForbidden
		}
		resp = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
