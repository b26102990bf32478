package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/permission"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
	"github.com/tu-usuario/pedidos-pro/pkg/logger"
)

// Acciones de autoservicio del repartidor.
const (
	ActionStartRoute      = "start_route"
	ActionConfirmDelivery = "confirm_delivery"
)

// DeliveryUseCase coordina la asignación de repartidores y el avance de
// estado en autoservicio. La asignación se limita a pedidos CONFIRMED y el
// avance sigue la tabla de adyacencia estricta CONFIRMED -> IN_ROUTE ->
// DELIVERED; la entrega nunca toca el estado de pago.
//
// Las mutaciones (asignar, desasignar, avanzar) corren bajo el advisory lock
// del pedido: su leer-modificar-escribir queda serializado con los flujos de
// pago, que toman el mismo lock, y una escritura de entrega no puede pisar
// un paid_at recién asentado con el valor viejo.
type DeliveryUseCase struct {
	tx     TxRunner
	orders repository.OrderRepository
	users  repository.UserRepository
	perms  permission.Resolver
	log    *logger.Logger
}

// NewDeliveryUseCase construye el caso de uso. orders se usa solo para
// lecturas; toda mutación pasa por tx.
func NewDeliveryUseCase(tx TxRunner, orders repository.OrderRepository, users repository.UserRepository, perms permission.Resolver, log *logger.Logger) *DeliveryUseCase {
	return &DeliveryUseCase{tx: tx, orders: orders, users: users, perms: perms, log: log}
}

// Assign asigna (o reasigna) un repartidor a un pedido CONFIRMED. Asignar no
// es una transición de estado: el pedido queda en CONFIRMED.
func (uc *DeliveryUseCase) Assign(ctx context.Context, actorRole, orderID, deliveryPersonID string) (*dto.OrderResponse, error) {
	if !uc.perms.Resolve(actorRole).CanAssignDelivery {
		return nil, domain.ErrForbidden
	}
	target, err := uc.users.GetByID(ctx, deliveryPersonID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.Role != entity.RoleDelivery {
		return nil, fmt.Errorf("%w: el usuario destino no es repartidor", domain.ErrInvalidInput)
	}

	var resp *dto.OrderResponse
	err = uc.tx.RunWithOrderLock(ctx, orderID, func(
		ordersRepo repository.OrderRepository,
		_ repository.InstallmentRepository,
		_ repository.CashFlowRepository,
	) error {
		order, err := ordersRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.StatusConfirmed {
			return fmt.Errorf("%w: solo se asignan pedidos CONFIRMED (actual %s)", domain.ErrInvalidTransition, order.Status)
		}

		order.DeliveryPersonID = &deliveryPersonID
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
	uc.log.Info().Str("order_id", orderID).Str("delivery_person", deliveryPersonID).Msg("repartidor asignado")
	return resp, nil
}

// Unassign quita el repartidor de un pedido. Se rechaza si el pedido ya está
// IN_ROUTE o DELIVERED.
func (uc *DeliveryUseCase) Unassign(ctx context.Context, actorRole, orderID string) (*dto.OrderResponse, error) {
	if !uc.perms.Resolve(actorRole).CanAssignDelivery {
		return nil, domain.ErrForbidden
	}
	var resp *dto.OrderResponse
	err := uc.tx.RunWithOrderLock(ctx, orderID, func(
		ordersRepo repository.OrderRepository,
		_ repository.InstallmentRepository,
		_ repository.CashFlowRepository,
	) error {
		order, err := ordersRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.StatusInRoute || order.Status == entity.StatusDelivered {
			return fmt.Errorf("%w: no se puede quitar el repartidor de un pedido %s", domain.ErrInvalidTransition, order.Status)
		}

		order.DeliveryPersonID = nil
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
	uc.log.Info().Str("order_id", orderID).Msg("repartidor desasignado")
	return resp, nil
}

// Advance avanza el estado en autoservicio. Solo el usuario exactamente
// referenciado por delivery_person_id puede operar sobre el pedido.
func (uc *DeliveryUseCase) Advance(ctx context.Context, deliveryUserID, orderID, action string) (*dto.OrderResponse, error) {
	var target entity.Status
	switch action {
	case ActionStartRoute:
		target = entity.StatusInRoute
	case ActionConfirmDelivery:
		target = entity.StatusDelivered
	default:
		return nil, fmt.Errorf("%w: acción %q desconocida", domain.ErrInvalidInput, action)
	}

	var resp *dto.OrderResponse
	err := uc.tx.RunWithOrderLock(ctx, orderID, func(
		ordersRepo repository.OrderRepository,
		_ repository.InstallmentRepository,
		_ repository.CashFlowRepository,
	) error {
		order, err := ordersRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.DeliveryPersonID == nil || *order.DeliveryPersonID != deliveryUserID {
			return domain.ErrForbidden
		}
		if !entity.CanDeliveryTransition(order.Status, target) {
			return fmt.Errorf("%w: %s no permite %s", domain.ErrInvalidTransition, order.Status, action)
		}

		// Solo estado. El pago queda intacto: entregar y cobrar están desacoplados.
		order.Status = target
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
	uc.log.Info().Str("order_id", orderID).Str("status", string(target)).Msg("avance de entrega")
	return resp, nil
}

// MyRoute pedidos activos asignados al repartidor (CONFIRMED o IN_ROUTE).
func (uc *DeliveryUseCase) MyRoute(ctx context.Context, deliveryUserID string) ([]dto.OrderResponse, error) {
	list, err := uc.orders.ListByDeliveryPerson(ctx, deliveryUserID,
		[]entity.Status{entity.StatusConfirmed, entity.StatusInRoute})
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// Roster lista los usuarios con rol DELIVERY, para elegir a quién asignar.
func (uc *DeliveryUseCase) Roster(ctx context.Context, actorRole string) ([]dto.UserResponse, error) {
	if !uc.perms.Resolve(actorRole).CanAssignDelivery {
		return nil, domain.ErrForbidden
	}
	users, err := uc.users.ListByRole(ctx, entity.RoleDelivery)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Phone:     u.Phone,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return resp, nil
}

// PromoteToDelivery promueve un USER a repartidor.
func (uc *DeliveryUseCase) PromoteToDelivery(ctx context.Context, actorRole, userID string) error {
	if !uc.perms.Resolve(actorRole).CanManageDeliveryPersons {
		return domain.ErrForbidden
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role != entity.RoleUser {
		return fmt.Errorf("%w: solo un USER puede promoverse a DELIVERY", domain.ErrInvalidTransition)
	}
	return uc.users.SetRole(ctx, userID, entity.RoleDelivery)
}

// DemoteFromDelivery devuelve un repartidor a USER. Se rechaza mientras tenga
// pedidos CONFIRMED o IN_ROUTE asignados: primero hay que reasignarlos o
// completarlos.
func (uc *DeliveryUseCase) DemoteFromDelivery(ctx context.Context, actorRole, userID string) error {
	if !uc.perms.Resolve(actorRole).CanManageDeliveryPersons {
		return domain.ErrForbidden
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role != entity.RoleDelivery {
		return fmt.Errorf("%w: el usuario no es repartidor", domain.ErrInvalidTransition)
	}
	active, err := uc.orders.CountActiveByDeliveryPerson(ctx, userID)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: el repartidor tiene %d pedidos activos asignados", domain.ErrInvalidTransition, active)
	}
	return uc.users.SetRole(ctx, userID, entity.RoleUser)
}
