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

	"github.com/tu-usuario/pos-inventario/internal/application/auth"
	"github.com/tu-usuario/pos-inventario/internal/application/catalog"
	"github.com/tu-usuario/pos-inventario/internal/application/customer"
	"github.com/tu-usuario/pos-inventario/internal/application/inventory"
	"github.com/tu-usuario/pos-inventario/internal/application/notification"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
	"github.com/tu-usuario/pos-inventario/internal/application/sales"
	"github.com/tu-usuario/pos-inventario/internal/application/settings"
	inframail "github.com/tu-usuario/pos-inventario/internal/infrastructure/mail"
	infrapdf "github.com/tu-usuario/pos-inventario/internal/infrastructure/pdf"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-inventario/internal/interfaces/http"
	"github.com/tu-usuario/pos-inventario/pkg/config"
	"github.com/tu-usuario/pos-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	settingsSvc := settings.NewService(settingsRepo, cfg.Alerts.DefaultEmail)
	mailSender := inframail.NewGomailSender(cfg.SMTP, log)
	alertPipeline := notification.NewPipeline(notificationRepo, settingsSvc, mailSender, log)

	catalogUC := catalog.NewUseCase(txRunner, productRepo, invRepo, settingsSvc, alertPipeline)
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, invRepo, settingsSvc, alertPipeline)
	salesUC := sales.NewUseCase(txRunner, saleRepo, customerRepo, inventoryUC, settingsSvc, alertPipeline)
	customerUC := customer.NewUseCase(customerRepo, settingsSvc)
	notificationUC := notification.NewUseCase(notificationRepo, settingsSvc)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportsUC := reports.NewUseCase(saleRepo, settingsSvc, pdfGenerator)

	authUC := auth.NewUseCase(userRepo, mailSender, auth.Config{
		JWTSecret:    cfg.JWT.Secret,
		Issuer:       cfg.JWT.Issuer,
		ExpMinutes:   cfg.JWT.Expiration,
		ResetBaseURL: cfg.App.ResetBaseURL,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// El JSON lo genera `swag init` fuera del build; sin el archivo, la UI
	// queda deshabilitada.
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "POS Inventario API",
		}))
	} else {
		log.Warn().Msg("docs/swagger.json no encontrado; swagger UI deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:      catalogUC,
		InventoryUC:    inventoryUC,
		SalesUC:        salesUC,
		CustomerUC:     customerUC,
		NotificationUC: notificationUC,
		SettingsSvc:    settingsSvc,
		ReportsUC:      reportsUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
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
