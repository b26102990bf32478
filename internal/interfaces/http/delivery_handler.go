package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/application/orders"
)

// DeliveryHandler maneja asignación de repartidores y autoservicio de entrega.
type DeliveryHandler struct {
	uc *orders.DeliveryUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *orders.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Assign asigna un repartidor a un pedido CONFIRMED.
// POST /api/orders/:id/delivery-person
func (h *DeliveryHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.DeliveryPersonID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "deliveryPersonId requerido"})
	}
	order, err := h.uc.Assign(c.Context(), GetRole(c), c.Params("id"), in.DeliveryPersonID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Unassign quita el repartidor del pedido.
// DELETE /api/orders/:id/delivery-person
func (h *DeliveryHandler) Unassign(c *fiber.Ctx) error {
	order, err := h.uc.Unassign(c.Context(), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Advance avance de estado en autoservicio (start_route | confirm_delivery).
// POST /api/delivery/orders/:id/action
func (h *DeliveryHandler) Advance(c *fiber.Ctx) error {
	var in dto.DeliveryActionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Advance(c.Context(), GetUserID(c), c.Params("id"), in.Action)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// MyRoute pedidos activos asignados al repartidor autenticado.
// GET /api/delivery/route
func (h *DeliveryHandler) MyRoute(c *fiber.Ctx) error {
	list, err := h.uc.MyRoute(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Roster usuarios con rol DELIVERY.
// GET /api/delivery-persons
func (h *DeliveryHandler) Roster(c *fiber.Ctx) error {
	list, err := h.uc.Roster(c.Context(), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Promote convierte un USER en repartidor.
// POST /api/delivery-persons/:userId
func (h *DeliveryHandler) Promote(c *fiber.Ctx) error {
	if err := h.uc.PromoteToDelivery(c.Context(), GetRole(c), c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Demote devuelve un repartidor a USER (rechazado si tiene pedidos activos).
// DELETE /api/delivery-persons/:userId
func (h *DeliveryHandler) Demote(c *fiber.Ctx) error {
	if err := h.uc.DemoteFromDelivery(c.Context(), GetRole(c), c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
