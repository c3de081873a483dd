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
	"github.com/tu-usuario/logistica-api/internal/application/auth"
	"github.com/tu-usuario/logistica-api/internal/application/ledger"
	apprecurrence "github.com/tu-usuario/logistica-api/internal/application/recurrence"
	"github.com/tu-usuario/logistica-api/internal/application/usecase"
	"github.com/tu-usuario/logistica-api/internal/infrastructure/excel"
	infrapdf "github.com/tu-usuario/logistica-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/logistica-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/logistica-api/internal/interfaces/http"
	"github.com/tu-usuario/logistica-api/pkg/config"
	"github.com/tu-usuario/logistica-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	ruleRepo := postgres.NewRuleRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo)
	driverUC := usecase.NewDriverUseCase(driverRepo)
	pricingUC := usecase.NewPricingUseCase(priceRepo)
	bookingUC := usecase.NewBookingUseCase(bookingRepo)
	dashboardUC := usecase.NewDashboardUseCase(statsRepo)
	ruleUC := apprecurrence.NewRuleUseCase(ruleRepo)
	generateUC := apprecurrence.NewGenerateUseCase(ruleRepo, bookingRepo)
	ledgerUC := ledger.NewUseCase(txRunner, itemRepo, movementRepo)

	// PDF: estimado de bodegaje por artículo
	pdfGenerator := infrapdf.NewMarotoEstimateGenerator(cfg.App.Name)
	estimateDocUC := ledger.NewEstimateDocUseCase(ledgerUC, customerRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Logística API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		VehicleUC:   vehicleUC,
		DriverUC:    driverUC,
		PricingUC:   pricingUC,
		BookingUC:   bookingUC,
		DashboardUC: dashboardUC,
		RuleUC:      ruleUC,
		GenerateUC:  generateUC,
		LedgerUC:    ledgerUC,
		EstimateDoc: estimateDocUC,
		Exporter:    excel.NewBookingExporter(),
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
