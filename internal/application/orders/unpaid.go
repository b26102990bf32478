package orders

import (
	"context"
	"time"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/permission"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
	"github.com/tu-usuario/pedidos-pro/pkg/localdate"
)

// UnpaidOrdersUseCase lista los pedidos impagos enriquecidos con urgencia,
// particionados para el tablero de cobros y los recordatorios. Solo lectura.
type UnpaidOrdersUseCase struct {
	orders repository.OrderRepository
	perms  permission.Resolver
	// clock inyectable para tests; nil usa time.Now.
	clock func() time.Time
}

// NewUnpaidOrdersUseCase construye el caso de uso.
func NewUnpaidOrdersUseCase(orders repository.OrderRepository, perms permission.Resolver) *UnpaidOrdersUseCase {
	return &UnpaidOrdersUseCase{orders: orders, perms: perms}
}

// WithClock reemplaza el reloj (tests).
func (uc *UnpaidOrdersUseCase) WithClock(clock func() time.Time) *UnpaidOrdersUseCase {
	uc.clock = clock
	return uc
}

// List pedidos con paid_at nulo, clasificados por urgencia.
func (uc *UnpaidOrdersUseCase) List(ctx context.Context, actorRole string) (*dto.UnpaidOrdersResponse, error) {
	if !uc.perms.Resolve(actorRole).CanViewUnpaidOrders {
		return nil, domain.ErrForbidden
	}
	list, err := uc.orders.ListUnpaid(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if uc.clock != nil {
		now = uc.clock()
	}

	resp := &dto.UnpaidOrdersResponse{
		Overdue:  []dto.UnpaidOrderResponse{},
		Upcoming: []dto.UnpaidOrderResponse{},
		Normal:   []dto.UnpaidOrderResponse{},
	}
	for _, o := range list {
		info := ClassifyUnpaidOrder(now, o)
		item := dto.UnpaidOrderResponse{
			OrderResponse: *toOrderResponse(o),
			UrgencyLevel:  info.Level,
			DaysUntilDue:  info.DaysUntilDue,
		}
		if info.NextDueDate != nil {
			s := localdate.FromTime(*info.NextDueDate).String()
			item.NextDueDate = &s
		}
		switch info.Level {
		case UrgencyOverdue:
			resp.Overdue = append(resp.Overdue, item)
		case UrgencyUpcoming:
			resp.Upcoming = append(resp.Upcoming, item)
		default:
			resp.Normal = append(resp.Normal, item)
		}
	}
	return resp, nil
}
