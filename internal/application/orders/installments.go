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

// InstallmentUseCase gestiona el cronograma de cuotas de pedidos con boleto y
// su reflejo en el libro de caja. Es el ÚNICO dueño de los asientos de caja
// de pedidos boleto; el PATCH de pedidos nunca los toca.
type InstallmentUseCase struct {
	tx           TxRunner
	installments repository.InstallmentRepository
	log          *logger.Logger
}

// NewInstallmentUseCase construye el caso de uso.
func NewInstallmentUseCase(tx TxRunner, installments repository.InstallmentRepository, log *logger.Logger) *InstallmentUseCase {
	return &InstallmentUseCase{tx: tx, installments: installments, log: log}
}

// ReplaceSchedule reemplaza el cronograma completo: borra todas las cuotas
// del pedido y las recrea con números asignados por posición (1-based).
// Los asientos de caja de las cuotas viejas se borran con ellas y el paid_at
// agregado se limpia: las cuotas nuevas nacen impagas, así que un pedido con
// cronograma recién reemplazado nunca puede quedar marcado como pagado.
// Solo ADMIN. Lista vacía se rechaza.
func (uc *InstallmentUseCase) ReplaceSchedule(ctx context.Context, actorRole, orderID string, in dto.ReplaceInstallmentsRequest) ([]dto.InstallmentResponse, error) {
	if actorRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if len(in.Installments) == 0 {
		return nil, fmt.Errorf("%w: el cronograma no puede ser vacío", domain.ErrInvalidInput)
	}

	// Vencimientos como día de calendario local, nunca ISO-UTC.
	dueDates := make([]time.Time, len(in.Installments))
	for i, item := range in.Installments {
		if !item.Amount.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: la cuota %d debe tener monto positivo", domain.ErrInvalidInput, i+1)
		}
		d, err := localdate.Parse(item.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: cuota %d: %v", domain.ErrInvalidInput, i+1, err)
		}
		dueDates[i] = d.Midnight()
	}

	var out []dto.InstallmentResponse
	err := uc.tx.RunWithOrderLock(ctx, orderID, func(
		ordersRepo repository.OrderRepository,
		instRepo repository.InstallmentRepository,
		cashRepo repository.CashFlowRepository,
	) error {
		order, err := ordersRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		// Los asientos de las cuotas viejas se van con ellas; si sobrevivieran,
		// un pago futuro los encontraría por (order_id, número) y reusaría el
		// monto viejo.
		old, err := instRepo.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		for _, inst := range old {
			if err := cashRepo.DeleteByInstallment(ctx, orderID, inst.Number); err != nil {
				return err
			}
		}
		if err := instRepo.DeleteByOrder(ctx, orderID); err != nil {
			return err
		}

		// Cuotas nuevas impagas implica pedido impago.
		if order.IsPaid() {
			if err := ordersRepo.SetPaidAt(ctx, orderID, nil); err != nil {
				return err
			}
			order.PaidAt = nil
		}
		now := time.Now()
		out = make([]dto.InstallmentResponse, 0, len(in.Installments))
		for i, item := range in.Installments {
			inst := &entity.Installment{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				Number:    i + 1,
				Amount:    item.Amount,
				DueDate:   dueDates[i],
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := instRepo.Create(ctx, inst); err != nil {
				return err
			}
			out = append(out, toInstallmentResponse(inst))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", orderID).Int("installments", len(out)).Msg("cronograma de cuotas reemplazado")
	return out, nil
}

// SetInstallmentPaid marca o desmarca el pago de una cuota y mantiene
// consistentes el asiento de caja de la cuota y el paid_at agregado del
// pedido: no nulo si y solo si TODAS las cuotas están pagadas.
// Idempotente: repetir la misma marca no duplica asientos. Solo ADMIN.
func (uc *InstallmentUseCase) SetInstallmentPaid(ctx context.Context, actorRole, installmentID string, in dto.PayInstallmentRequest) (*dto.OrderResponse, error) {
	if actorRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Paid == nil {
		return nil, fmt.Errorf("%w: falta el campo paid", domain.ErrInvalidInput)
	}
	payDate := time.Now()
	if in.PaymentDate != "" {
		d, err := localdate.Parse(in.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: paymentDate: %v", domain.ErrInvalidInput, err)
		}
		payDate = d.Midnight()
	}

	// Lookup previo para conocer el pedido a bloquear.
	head, err := uc.installments.GetByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, domain.ErrNotFound
	}

	var resp *dto.OrderResponse
	err = uc.tx.RunWithOrderLock(ctx, head.OrderID, func(
		ordersRepo repository.OrderRepository,
		instRepo repository.InstallmentRepository,
		cashRepo repository.CashFlowRepository,
	) error {
		inst, err := instRepo.GetByID(ctx, installmentID)
		if err != nil {
			return err
		}
		if inst == nil {
			return domain.ErrNotFound
		}
		order, err := ordersRepo.GetByID(ctx, inst.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		if *in.Paid {
			if err := uc.markPaid(ctx, instRepo, cashRepo, order, inst, payDate); err != nil {
				return err
			}
		} else {
			if err := uc.markUnpaid(ctx, instRepo, cashRepo, order, inst); err != nil {
				return err
			}
		}

		// Recalcular el agregado: pagado si y solo si todas las cuotas lo están.
		list, err := instRepo.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		allPaid := len(list) > 0
		for _, it := range list {
			if !it.IsPaid() {
				allPaid = false
				break
			}
		}
		switch {
		case allPaid && !order.IsPaid():
			if err := ordersRepo.SetPaidAt(ctx, order.ID, &payDate); err != nil {
				return err
			}
			order.PaidAt = &payDate
		case !allPaid && order.IsPaid():
			if err := ordersRepo.SetPaidAt(ctx, order.ID, nil); err != nil {
				return err
			}
			order.PaidAt = nil
		}

		order.Installments = list
		resp = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", head.OrderID).
		Int("installment", head.Number).
		Bool("paid", *in.Paid).
		Msg("cuota actualizada")
	return resp, nil
}

func (uc *InstallmentUseCase) markPaid(
	ctx context.Context,
	instRepo repository.InstallmentRepository,
	cashRepo repository.CashFlowRepository,
	order *entity.Order,
	inst *entity.Installment,
	payDate time.Time,
) error {
	if err := instRepo.SetPaidAt(ctx, inst.ID, &payDate); err != nil {
		return err
	}
	inst.PaidAt = &payDate

	// Un asiento por cuota, localizable por (order_id, installment_number).
	existing, err := cashRepo.GetInstallmentEntry(ctx, order.ID, inst.Number)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.PaymentDate = payDate
		existing.UpdatedAt = time.Now()
		return cashRepo.Update(ctx, existing)
	}
	method := entity.PaymentBoleto
	now := time.Now()
	number := inst.Number
	return cashRepo.Create(ctx, &entity.CashFlow{
		ID:                uuid.New().String(),
		Type:              entity.CashFlowIncome,
		Amount:            inst.Amount,
		Description:       fmt.Sprintf("Pago cuota %d - pedido #%s", inst.Number, shortOrderID(order.ID)),
		PaymentMethod:     &method,
		PaymentDate:       payDate,
		OrderID:           &order.ID,
		InstallmentNumber: &number,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

func (uc *InstallmentUseCase) markUnpaid(
	ctx context.Context,
	instRepo repository.InstallmentRepository,
	cashRepo repository.CashFlowRepository,
	order *entity.Order,
	inst *entity.Installment,
) error {
	if err := instRepo.SetPaidAt(ctx, inst.ID, nil); err != nil {
		return err
	}
	inst.PaidAt = nil
	return cashRepo.DeleteByInstallment(ctx, order.ID, inst.Number)
}
