package orders

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/permission"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

// ReceiptGenerator puerto de generación del comprobante imprimible del pedido.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order) ([]byte, error)
}

// ReceiptUseCase genera el comprobante PDF de un pedido. Lo puede pedir el
// dueño del pedido o cualquier usuario del panel con permiso de ver pedidos.
type ReceiptUseCase struct {
	orders repository.OrderRepository
	perms  permission.Resolver
	gen    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders repository.OrderRepository, perms permission.Resolver, gen ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, perms: perms, gen: gen}
}

// Execute devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) Execute(ctx context.Context, actorID, actorRole, orderID string) ([]byte, string, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if order.CustomerID != actorID && !uc.perms.Resolve(actorRole).CanViewOrders {
		return nil, "", domain.ErrForbidden
	}
	pdf, err := uc.gen.GenerateOrderReceipt(ctx, order)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("pedido-%s.pdf", shortOrderID(order.ID))
	return pdf, filename, nil
}
