package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	createUC  *orders.CreateOrderUseCase
	updateUC  *orders.UpdateOrderUseCase
	queryUC   *orders.QueryUseCase
	instUC    *orders.InstallmentUseCase
	unpaidUC  *orders.UnpaidOrdersUseCase
	receiptUC *orders.ReceiptUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	createUC *orders.CreateOrderUseCase,
	updateUC *orders.UpdateOrderUseCase,
	queryUC *orders.QueryUseCase,
	instUC *orders.InstallmentUseCase,
	unpaidUC *orders.UnpaidOrdersUseCase,
	receiptUC *orders.ReceiptUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUC:  createUC,
		updateUC:  updateUC,
		queryUC:   queryUC,
		instUC:    instUC,
		unpaidUC:  unpaidUC,
		receiptUC: receiptUC,
	}
}

// Create checkout del cliente autenticado.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.createUC.Execute(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// ListMine pedidos del cliente autenticado.
// GET /api/orders/mine
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	list, err := h.queryUC.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// List listado paginado para el panel.
// GET /api/orders?limit=&offset=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	list, err := h.queryUC.ListForStaff(c.Context(), GetRole(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID detalle de un pedido (dueño o staff con permiso de ver).
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.updateUC.Get(c.Context(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Patch edición parcial de staff. FINANCIAL tiene campos restringidos;
// el filtrado lo hace el caso de uso.
// PATCH /api/orders/:id
func (h *OrderHandler) Patch(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.updateUC.Execute(c.Context(), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ReplaceInstallments reemplaza el cronograma de cuotas completo (solo ADMIN).
// PUT /api/orders/:id/installments
func (h *OrderHandler) ReplaceInstallments(c *fiber.Ctx) error {
	var in dto.ReplaceInstallmentsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	list, err := h.instUC.ReplaceSchedule(c.Context(), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// PayInstallment marca o desmarca el pago de una cuota (solo ADMIN).
// PATCH /api/installments/:id/pay
func (h *OrderHandler) PayInstallment(c *fiber.Ctx) error {
	var in dto.PayInstallmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.instUC.SetInstallmentPaid(c.Context(), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Unpaid pedidos impagos particionados por urgencia.
// GET /api/orders/unpaid
func (h *OrderHandler) Unpaid(c *fiber.Ctx) error {
	resp, err := h.unpaidUC.List(c.Context(), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Receipt comprobante PDF del pedido.
// GET /api/orders/:id/receipt
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receiptUC.Execute(c.Context(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
