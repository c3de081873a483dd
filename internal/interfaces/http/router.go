package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/logistica-api/internal/application/auth"
	"github.com/tu-usuario/logistica-api/internal/application/ledger"
	"github.com/tu-usuario/logistica-api/internal/application/recurrence"
	"github.com/tu-usuario/logistica-api/internal/application/usecase"
	"github.com/tu-usuario/logistica-api/internal/infrastructure/excel"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *usecase.CustomerUseCase
	VehicleUC   *usecase.VehicleUseCase
	DriverUC    *usecase.DriverUseCase
	PricingUC   *usecase.PricingUseCase
	BookingUC   *usecase.BookingUseCase
	DashboardUC *usecase.DashboardUseCase
	RuleUC      *recurrence.RuleUseCase
	GenerateUC  *recurrence.GenerateUseCase
	LedgerUC    *ledger.UseCase
	EstimateDoc *ledger.EstimateDocUseCase
	Exporter    *excel.BookingExporter
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole("admin")

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Vehicles (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", adminOnly, vehicleHandler.Delete)

	// Drivers (protegido)
	drivers := protected.Group("/drivers")
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Post("/", driverHandler.Create)
	drivers.Get("/", driverHandler.List)
	drivers.Get("/:id", driverHandler.GetByID)
	drivers.Put("/:id", driverHandler.Update)
	drivers.Delete("/:id", adminOnly, driverHandler.Delete)

	// Prices (protegido; escritura solo admin)
	prices := protected.Group("/prices")
	pricingHandler := NewPricingHandler(deps.PricingUC)
	prices.Post("/", adminOnly, pricingHandler.Create)
	prices.Get("/", pricingHandler.List)
	prices.Get("/:id", pricingHandler.GetByID)
	prices.Put("/:id", adminOnly, pricingHandler.Update)
	prices.Delete("/:id", adminOnly, pricingHandler.Delete)

	// Bookings (protegido). /export va antes de /:id.
	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(deps.BookingUC, deps.Exporter)
	bookings.Post("/", bookingHandler.Create)
	bookings.Get("/", bookingHandler.List)
	bookings.Get("/export", bookingHandler.Export)
	bookings.Get("/:id", bookingHandler.GetByID)
	bookings.Put("/:id", bookingHandler.Update)
	bookings.Delete("/:id", adminOnly, bookingHandler.Delete)

	// Recurrences (protegido)
	recurrences := protected.Group("/recurrences")
	recurrenceHandler := NewRecurrenceHandler(deps.RuleUC, deps.GenerateUC)
	recurrences.Post("/", recurrenceHandler.Create)
	recurrences.Get("/", recurrenceHandler.List)
	recurrences.Get("/:id", recurrenceHandler.GetByID)
	recurrences.Put("/:id", recurrenceHandler.Update)
	recurrences.Post("/:id/generate", recurrenceHandler.Generate)

	// Warehouse items + movimientos del libro (protegido)
	items := protected.Group("/items")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.EstimateDoc)
	items.Post("/", ledgerHandler.CreateItem)
	items.Get("/", ledgerHandler.ListItems)
	items.Get("/:id", ledgerHandler.GetItem)
	items.Delete("/:id", adminOnly, ledgerHandler.DeleteItem)
	items.Post("/:id/movements", ledgerHandler.RecordMovement)
	items.Get("/:id/movements", ledgerHandler.ListMovements)
	items.Get("/:id/estimate", ledgerHandler.GetEstimate)
	items.Get("/:id/estimate/pdf", ledgerHandler.GetEstimatePDF)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}
