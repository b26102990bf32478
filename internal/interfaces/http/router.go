package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pedidos-pro/internal/application/auth"
	"github.com/tu-usuario/pedidos-pro/internal/application/cashflow"
	"github.com/tu-usuario/pedidos-pro/internal/application/orders"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CreateOrder *orders.CreateOrderUseCase
	UpdateOrder *orders.UpdateOrderUseCase
	OrderQuery  *orders.QueryUseCase
	Installment *orders.InstallmentUseCase
	Unpaid      *orders.UnpaidOrdersUseCase
	Receipt     *orders.ReceiptUseCase
	Delivery    *orders.DeliveryUseCase
	CashFlow    *cashflow.UseCase
	Zones       repository.DeliveryZoneRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Zonas de entrega (cualquier usuario autenticado, para el checkout)
	zoneHandler := NewZoneHandler(deps.Zones)
	protected.Get("/delivery-zones", zoneHandler.ListActive)

	// Pedidos
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.UpdateOrder, deps.OrderQuery,
		deps.Installment, deps.Unpaid, deps.Receipt)
	deliveryHandler := NewDeliveryHandler(deps.Delivery)

	protected.Post("/orders", orderHandler.Create)
	protected.Get("/orders/mine", orderHandler.ListMine)
	// Registrar antes de /orders/:id para que "unpaid" no se capture como ID.
	protected.Get("/orders/unpaid", RequireAdminAccess(), orderHandler.Unpaid)
	protected.Get("/orders", RequireAdminAccess(), orderHandler.List)
	protected.Get("/orders/:id", orderHandler.GetByID)
	protected.Get("/orders/:id/receipt", orderHandler.Receipt)
	protected.Patch("/orders/:id", RequireAdminAccess(), orderHandler.Patch)
	protected.Put("/orders/:id/installments", RequireAdminAccess(), orderHandler.ReplaceInstallments)
	protected.Patch("/installments/:id/pay", RequireAdminAccess(), orderHandler.PayInstallment)

	// Asignación de repartidores (panel)
	protected.Post("/orders/:id/delivery-person", RequireAdminAccess(), deliveryHandler.Assign)
	protected.Delete("/orders/:id/delivery-person", RequireAdminAccess(), deliveryHandler.Unassign)
	protected.Get("/delivery-persons", RequireAdminAccess(), deliveryHandler.Roster)
	protected.Post("/delivery-persons/:userId", RequireAdminAccess(), deliveryHandler.Promote)
	protected.Delete("/delivery-persons/:userId", RequireAdminAccess(), deliveryHandler.Demote)

	// Autoservicio del repartidor
	protected.Get("/delivery/route", deliveryHandler.MyRoute)
	protected.Post("/delivery/orders/:id/action", deliveryHandler.Advance)

	// Libro de caja (panel)
	cashFlowHandler := NewCashFlowHandler(deps.CashFlow)
	cash := protected.Group("/cash-flow", RequireAdminAccess())
	cash.Get("/", cashFlowHandler.List)
	cash.Post("/", cashFlowHandler.Create)
	cash.Patch("/:id", cashFlowHandler.Update)
	cash.Delete("/:id", cashFlowHandler.Delete)
}
