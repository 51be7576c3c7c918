package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	_ "github.com/jhoicas/taller-api/docs"
	"github.com/jhoicas/taller-api/internal/application/accounting"
	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/crm"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/application/reports"
	"github.com/jhoicas/taller-api/internal/application/sequence"
	"github.com/jhoicas/taller-api/internal/application/workshop"
	"github.com/jhoicas/taller-api/internal/infrastructure/export"
	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/taller-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/taller-api/internal/interfaces/http"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
	"github.com/jhoicas/taller-api/pkg/phone"
)

// @title                       Taller API
// @version                     1.0
// @description                 ERP para talleres mecánicos: clientes, vehículos, órdenes de trabajo, inventario, facturación y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: el login fallará hasta configurarlo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	// Candado distribuido para la numeración; sin Redis basta el advisory lock de Postgres.
	var locker ports.Locker
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = infraredis.NewLocker(rdb)
	}

	txRunner := postgres.NewTxRunner(pool)
	seq := sequence.NewGenerator(txRunner, locker)
	phones := phone.NewNormalizer(cfg.App.PhoneRegion)

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	wsRepos := workshop.Repositories{
		JobOrders:       postgres.NewJobOrderRepository(pool),
		Items:           postgres.NewJobOrderItemRepository(pool),
		TechnicianTimes: postgres.NewTechnicianTimeRepository(pool),
		StatusHistory:   postgres.NewStatusHistoryRepository(pool),
		Customers:       customerRepo,
		Vehicles:        vehicleRepo,
		Stats:           statsRepo,
	}
	accRepos := accounting.Repositories{
		Invoices:         postgres.NewInvoiceRepository(pool),
		Payments:         postgres.NewPaymentRepository(pool),
		SupplierPayments: postgres.NewSupplierPaymentRepository(pool),
		Expenses:         postgres.NewExpenseRepository(pool),
		Receivables:      postgres.NewReceivableRepository(pool),
		Payables:         postgres.NewPayableRepository(pool),
		Customers:        customerRepo,
		Suppliers:        supplierRepo,
		Stats:            statsRepo,
	}

	dashboardUC := reports.NewDashboardUseCase(statsRepo)
	renderers := map[string]ports.Renderer{
		"pdf":   export.NewPDFRenderer(language.Spanish),
		"excel": export.NewExcelRenderer(),
		"csv":   export.NewCSVRenderer(),
	}
	if err := os.MkdirAll(cfg.Reports.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Reports.Dir).Msg("directorio de reportes")
	}

	deps := httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(userRepo, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		UserUC:          auth.NewUserUseCase(userRepo),
		CustomerUC:      crm.NewCustomerUseCase(customerRepo, postgres.NewCommunicationRepository(pool), statsRepo, phones),
		AppointmentUC:   crm.NewAppointmentUseCase(postgres.NewAppointmentRepository(pool), customerRepo),
		VehicleUC:       crm.NewVehicleUseCase(vehicleRepo, postgres.NewVehicleHistoryRepository(pool), customerRepo, statsRepo),
		JobOrderUC:      workshop.NewJobOrderUseCase(wsRepos, txRunner, seq),
		JobOrderItemUC:  workshop.NewItemUseCase(wsRepos),
		CatalogUC:       inventory.NewCatalogUseCase(postgres.NewCategoryRepository(pool), supplierRepo, partRepo, txRunner, phones),
		StockUC:         inventory.NewStockUseCase(postgres.NewStockMovementRepository(pool), txRunner),
		PurchaseOrderUC: inventory.NewPurchaseOrderUseCase(postgres.NewPurchaseOrderRepository(pool), supplierRepo, partRepo, txRunner, seq),
		Replenishment:   inventory.NewReplenishmentUseCase(statsRepo),
		InvoiceUC:       accounting.NewInvoiceUseCase(accRepos, txRunner, seq),
		PaymentUC:       accounting.NewPaymentUseCase(accRepos, txRunner, seq),
		ExpenseUC:       accounting.NewExpenseUseCase(accRepos.Expenses, seq),
		LedgerUC:        accounting.NewLedgerUseCase(accRepos),
		DashboardUC:     dashboardUC,
		ReportUC:        reports.NewReportUseCase(postgres.NewReportRepository(pool), dashboardUC, renderers, cfg.Reports.Dir),
		JWTSecret:       cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

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
