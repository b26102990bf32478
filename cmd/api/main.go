package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/pedidos-pro/internal/application/auth"
	"github.com/tu-usuario/pedidos-pro/internal/application/cashflow"
	"github.com/tu-usuario/pedidos-pro/internal/application/orders"
	"github.com/tu-usuario/pedidos-pro/internal/domain/permission"
	infrapdf "github.com/tu-usuario/pedidos-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/pedidos-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pedidos-pro/internal/interfaces/http"
	"github.com/tu-usuario/pedidos-pro/pkg/config"
	"github.com/tu-usuario/pedidos-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	cashFlowRepo := postgres.NewCashFlowRepository(pool)
	zoneRepo := postgres.NewDeliveryZoneRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	perms := permission.NewStaticResolver()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	createOrderUC := orders.NewCreateOrderUseCase(txRunner, zoneRepo, log)
	updateOrderUC := orders.NewUpdateOrderUseCase(txRunner, perms, log)
	queryUC := orders.NewQueryUseCase(orderRepo, perms)
	installmentUC := orders.NewInstallmentUseCase(txRunner, installmentRepo, log)
	unpaidUC := orders.NewUnpaidOrdersUseCase(orderRepo, perms)
	deliveryUC := orders.NewDeliveryUseCase(txRunner, orderRepo, userRepo, perms, log)
	cashFlowUC := cashflow.New(cashFlowRepo, perms, log)

	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := orders.NewReceiptUseCase(orderRepo, perms, receiptGen)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pedidos Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CreateOrder: createOrderUC,
		UpdateOrder: updateOrderUC,
		OrderQuery:  queryUC,
		Installment: installmentUC,
		Unpaid:      unpaidUC,
		Receipt:     receiptUC,
		Delivery:    deliveryUC,
		CashFlow:    cashFlowUC,
		Zones:       zoneRepo,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
