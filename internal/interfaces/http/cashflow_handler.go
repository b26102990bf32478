package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pedidos-pro/internal/application/cashflow"
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
)

// CashFlowHandler maneja el libro de caja (panel financiero).
type CashFlowHandler struct {
	uc *cashflow.UseCase
}

// NewCashFlowHandler construye el handler.
func NewCashFlowHandler(uc *cashflow.UseCase) *CashFlowHandler {
	return &CashFlowHandler{uc: uc}
}

// List asientos filtrados más resumen de totales.
// GET /api/cash-flow?dateFrom=&dateTo=&type=&search=
func (h *CashFlowHandler) List(c *fiber.Ctx) error {
	q := cashflow.ListQuery{
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		Type:     c.Query("type"),
		Search:   c.Query("search"),
	}
	resp, err := h.uc.List(c.Context(), GetRole(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Create asiento manual.
// POST /api/cash-flow
func (h *CashFlowHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCashFlowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.Create(c.Context(), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Update edición parcial de un asiento.
// PATCH /api/cash-flow/:id
func (h *CashFlowHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCashFlowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.Update(c.Context(), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

// Delete borra un asiento.
// DELETE /api/cash-flow/:id
func (h *CashFlowHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
