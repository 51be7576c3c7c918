package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/accounting"
	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/crm"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/reports"
	"github.com/jhoicas/taller-api/internal/application/workshop"
	"github.com/jhoicas/taller-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *auth.UserUseCase
	CustomerUC      *crm.CustomerUseCase
	AppointmentUC   *crm.AppointmentUseCase
	VehicleUC       *crm.VehicleUseCase
	JobOrderUC      *workshop.JobOrderUseCase
	JobOrderItemUC  *workshop.ItemUseCase
	CatalogUC       *inventory.CatalogUseCase
	StockUC         *inventory.StockUseCase
	PurchaseOrderUC *inventory.PurchaseOrderUseCase
	Replenishment   *inventory.ReplenishmentUseCase
	InvoiceUC       *accounting.InvoiceUseCase
	PaymentUC       *accounting.PaymentUseCase
	ExpenseUC       *accounting.ExpenseUseCase
	LedgerUC        *accounting.LedgerUseCase
	DashboardUC     *reports.DashboardUseCase
	ReportUC        *reports.ReportUseCase
	JWTSecret       string
}

// Router registra las rutas de la API. Las rutas fijas (stats, generate) van antes que /:id.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Users: las lecturas sin acceso devuelven vacío o 404; las escrituras exigen super_admin.
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	onlyAdmin := RequireModule(access.Users)
	users.Get("/", userHandler.List)
	users.Post("/", onlyAdmin, userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", onlyAdmin, userHandler.Update)
	users.Delete("/:id", onlyAdmin, userHandler.Delete)

	// CRM
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/stats", customerHandler.Stats)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/communications", customerHandler.Communications)
	customers.Post("/:id/communications", customerHandler.AddCommunication)

	appointments := protected.Group("/appointments")
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	appointments.Get("/", appointmentHandler.List)
	appointments.Post("/", appointmentHandler.Create)
	appointments.Get("/:id", appointmentHandler.GetByID)
	appointments.Put("/:id", appointmentHandler.Update)
	appointments.Delete("/:id", appointmentHandler.Delete)

	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Get("/stats", vehicleHandler.Stats)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", vehicleHandler.Delete)
	vehicles.Get("/:id/history", vehicleHandler.History)
	vehicles.Post("/:id/history", vehicleHandler.AddHistory)

	// Taller
	jobOrders := protected.Group("/job-orders")
	jobOrderHandler := NewJobOrderHandler(deps.JobOrderUC, deps.JobOrderItemUC)
	jobOrders.Get("/stats", jobOrderHandler.Stats)
	jobOrders.Get("/", jobOrderHandler.List)
	jobOrders.Post("/", jobOrderHandler.Create)
	jobOrders.Get("/:id", jobOrderHandler.GetByID)
	jobOrders.Put("/:id", jobOrderHandler.Update)
	jobOrders.Delete("/:id", jobOrderHandler.Delete)
	jobOrders.Post("/:id/update-status", jobOrderHandler.UpdateStatus)
	jobOrders.Get("/:id/history", jobOrderHandler.History)
	jobOrders.Get("/:id/items", jobOrderHandler.ListItems)
	jobOrders.Post("/:id/items", jobOrderHandler.AddItem)
	jobOrders.Put("/:id/items/:itemId", jobOrderHandler.UpdateItem)
	jobOrders.Delete("/:id/items/:itemId", jobOrderHandler.DeleteItem)
	jobOrders.Get("/:id/technician-times", jobOrderHandler.ListTimes)
	jobOrders.Post("/:id/technician-times", jobOrderHandler.AddTime)
	jobOrders.Put("/:id/technician-times/:timeId", jobOrderHandler.UpdateTime)
	jobOrders.Delete("/:id/technician-times/:timeId", jobOrderHandler.DeleteTime)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.CatalogUC, deps.StockUC, deps.Replenishment)
	protected.Get("/inventory/stats", inventoryHandler.Stats)
	protected.Get("/inventory/low-stock-alerts", inventoryHandler.LowStockAlerts)

	categories := protected.Group("/categories")
	categories.Get("/", inventoryHandler.ListCategories)
	categories.Post("/", inventoryHandler.CreateCategory)
	categories.Put("/:id", inventoryHandler.UpdateCategory)
	categories.Delete("/:id", inventoryHandler.DeleteCategory)

	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", inventoryHandler.ListSuppliers)
	suppliers.Post("/", inventoryHandler.CreateSupplier)
	suppliers.Get("/:id", inventoryHandler.GetSupplier)
	suppliers.Put("/:id", inventoryHandler.UpdateSupplier)
	suppliers.Delete("/:id", inventoryHandler.DeleteSupplier)

	parts := protected.Group("/parts")
	parts.Get("/", inventoryHandler.ListParts)
	parts.Post("/", inventoryHandler.CreatePart)
	parts.Get("/:id", inventoryHandler.GetPart)
	parts.Put("/:id", inventoryHandler.UpdatePart)
	parts.Delete("/:id", inventoryHandler.DeletePart)

	movements := protected.Group("/stock-movements")
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Post("/", inventoryHandler.RecordMovement)

	purchaseOrders := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	purchaseOrders.Get("/", poHandler.List)
	purchaseOrders.Post("/", poHandler.Create)
	purchaseOrders.Get("/:id", poHandler.GetByID)
	purchaseOrders.Put("/:id", poHandler.Update)
	purchaseOrders.Delete("/:id", poHandler.Delete)
	purchaseOrders.Post("/:id/receive", poHandler.Receive)
	purchaseOrders.Post("/:id/items", poHandler.AddItem)
	purchaseOrders.Put("/:id/items/:itemId", poHandler.UpdateItem)
	purchaseOrders.Delete("/:id/items/:itemId", poHandler.DeleteItem)

	// Contabilidad
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PaymentUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/items", invoiceHandler.AddItem)
	invoices.Put("/:id/items/:itemId", invoiceHandler.UpdateItem)
	invoices.Delete("/:id/items/:itemId", invoiceHandler.DeleteItem)
	invoices.Post("/:id/process-payment", invoiceHandler.ProcessPayment)

	accountingHandler := NewAccountingHandler(deps.PaymentUC, deps.ExpenseUC, deps.LedgerUC)
	protected.Get("/payments", accountingHandler.ListPayments)
	protected.Post("/payments", accountingHandler.CreatePayment)
	protected.Get("/payments/:id", accountingHandler.GetPayment)
	protected.Put("/payments/:id", accountingHandler.UpdatePayment)
	protected.Get("/supplier-payments", accountingHandler.ListSupplierPayments)
	protected.Post("/supplier-payments", accountingHandler.CreateSupplierPayment)
	protected.Get("/expenses", accountingHandler.ListExpenses)
	protected.Post("/expenses", accountingHandler.CreateExpense)
	protected.Get("/expenses/:id", accountingHandler.GetExpense)
	protected.Put("/expenses/:id", accountingHandler.UpdateExpense)
	protected.Get("/receivables", accountingHandler.Receivables)
	protected.Get("/payables", accountingHandler.Payables)
	protected.Get("/accounting/stats", accountingHandler.Stats)

	// Reportes
	reportsGroup := protected.Group("/reports")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/dashboard-stats", dashboardHandler.Stats)
	reportsGroup.Get("/sales-report", dashboardHandler.Sales)
	reportsGroup.Get("/inventory-report", dashboardHandler.Inventory)
	reportsGroup.Get("/technician-performance", dashboardHandler.Technicians)
	reportsGroup.Post("/generate", reportHandler.Generate)
	reportsGroup.Get("/", reportHandler.List)
	reportsGroup.Get("/:id", reportHandler.GetByID)
	reportsGroup.Get("/:id/download", reportHandler.Download)
}
