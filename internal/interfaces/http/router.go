package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenimiento-api/internal/application/auth"
	"github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/application/report"
	"github.com/jhoicas/Mantenimiento-api/internal/application/transaction"
	"github.com/jhoicas/Mantenimiento-api/internal/application/usecase"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PartUC        *usecase.PartUseCase
	DepartmentUC  *usecase.DepartmentUseCase
	AssetUC       *usecase.AssetUseCase
	WorkOrderUC   *usecase.WorkOrderUseCase
	AdjustStockUC *inventory.AdjustStockUseCase
	HistoryUC     *inventory.HistoryUseCase
	TransactionUC *transaction.UseCase
	ReportUC      *report.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
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

	// Departments (protegido; mutaciones solo super_admin)
	departments := protected.Group("/departments")
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments.Get("/", departmentHandler.List)
	departments.Get("/:id", departmentHandler.GetByID)
	departments.Post("/", RequireRole(entity.RoleSuperAdmin), departmentHandler.Create)
	departments.Put("/:id", RequireRole(entity.RoleSuperAdmin), departmentHandler.Update)

	// Parts (protegido) con sub-rutas de inventario por repuesto
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	inventoryHandler := NewInventoryHandler(deps.AdjustStockUC, deps.HistoryUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)
	parts.Delete("/:id", partHandler.Deactivate)
	parts.Post("/:id/inventory", inventoryHandler.AdjustStock)
	parts.Get("/:id/inventory", inventoryHandler.GetHistory)
	parts.Get("/:id/inventory/consistency", inventoryHandler.VerifyConsistency)

	// Stock transactions (protegido)
	transactions := protected.Group("/stock-transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Get("/:id/validate", transactionHandler.Validate)
	transactions.Patch("/:id/status", transactionHandler.Transition)
	transactions.Post("/:id/cancel", transactionHandler.Cancel)
	transactions.Delete("/:id", transactionHandler.Delete)

	// Assets (protegido)
	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	assets.Post("/", assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Put("/:id", assetHandler.Update)

	// Work orders (protegido)
	workOrders := protected.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	workOrders.Post("/", workOrderHandler.Create)
	workOrders.Get("/", workOrderHandler.List)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Put("/:id", workOrderHandler.Update)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/valuation/pdf", reportHandler.ValuationPDF)
	reports.Get("/low-stock", reportHandler.LowStock)
}
