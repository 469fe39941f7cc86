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

	_ "github.com/jhoicas/Mantenimiento-api/docs"
	"github.com/jhoicas/Mantenimiento-api/internal/application/auth"
	appinv "github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/application/report"
	"github.com/jhoicas/Mantenimiento-api/internal/application/transaction"
	"github.com/jhoicas/Mantenimiento-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Mantenimiento-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Mantenimiento-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Mantenimiento-api/internal/interfaces/http"
	"github.com/jhoicas/Mantenimiento-api/pkg/config"
	"github.com/jhoicas/Mantenimiento-api/pkg/logger"
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

	// Repositorios sobre el pool (fuera de transacción)
	partRepo := postgres.NewPartRepository(pool)
	historyRepo := postgres.NewInventoryHistoryRepository(pool)
	txRepo := postgres.NewStockTransactionRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	workOrderRepo := postgres.NewWorkOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso de inventario (cada línea se aplica en su propia transacción)
	applyUC := appinv.NewApplyTransactionUseCase(txRunner)
	reverseUC := appinv.NewReverseTransactionUseCase(txRunner)
	adjustStockUC := appinv.NewAdjustStockUseCase(txRunner)
	historyUC := appinv.NewHistoryUseCase(partRepo, historyRepo)
	validator := appinv.NewAvailabilityValidator(partRepo)

	transactionUC := transaction.NewUseCase(txRepo, txRunner, partRepo, validator, applyUC, reverseUC)
	partUC := usecase.NewPartUseCase(partRepo, txRunner)
	departmentUC := usecase.NewDepartmentUseCase(departmentRepo)
	assetUC := usecase.NewAssetUseCase(assetRepo)
	workOrderUC := usecase.NewWorkOrderUseCase(workOrderRepo, assetRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := report.NewUseCase(reportRepo, departmentRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, departmentRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(logger.FiberMiddleware(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MantenPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PartUC:        partUC,
		DepartmentUC:  departmentUC,
		AssetUC:       assetUC,
		WorkOrderUC:   workOrderUC,
		AdjustStockUC: adjustStockUC,
		HistoryUC:     historyUC,
		TransactionUC: transactionUC,
		ReportUC:      reportUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
