package orders

import (
	"context"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/permission"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

// QueryUseCase listados de pedidos de solo lectura.
type QueryUseCase struct {
	orders repository.OrderRepository
	perms  permission.Resolver
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(orders repository.OrderRepository, perms permission.Resolver) *QueryUseCase {
	return &QueryUseCase{orders: orders, perms: perms}
}

// ListForStaff listado paginado para el panel (requiere CanViewOrders).
func (uc *QueryUseCase) ListForStaff(ctx context.Context, actorRole string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	if !uc.perms.Resolve(actorRole).CanViewOrders {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.orders.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListMine pedidos del cliente autenticado.
func (uc *QueryUseCase) ListMine(ctx context.Context, customerID string) ([]dto.OrderResponse, error) {
	list, err := uc.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}
