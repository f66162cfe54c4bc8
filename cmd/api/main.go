package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sokoni/depot-api/internal/application/service"
	"github.com/sokoni/depot-api/internal/config"
	"github.com/sokoni/depot-api/internal/infrastructure/database"
	"github.com/sokoni/depot-api/internal/infrastructure/repository"
	"github.com/sokoni/depot-api/internal/presentation/http/handler"
	"github.com/sokoni/depot-api/internal/presentation/http/routes"
	"github.com/sokoni/depot-api/pkg/printer"
	"github.com/sokoni/depot-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	var logger *zap.Logger
	var err error
	if cfg.App.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed the bootstrap admin account when the users table is empty
	if err := database.SeedAdminUser(db, &cfg.Seed); err != nil {
		logger.Warn("failed to seed admin user", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Expired idempotency records only matter until their TTL passes; sweep
	// them in the background so the table does not grow unbounded
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				logger.Warn("failed to sweep expired idempotency keys", zap.Error(err))
			}
		}
	}()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, logger)
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, userRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	dashboardService := service.NewDashboardService(reportRepo, productRepo, cfg.Dashboard.LowStockThreshold)
	reportService := service.NewReportService(reportRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		Device:  cfg.Printer.Device,
		Address: cfg.Printer.Address,
		Timeout: cfg.Printer.Timeout,
	})
	if err != nil {
		logger.Warn("failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.Disabled()
	}
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, &cfg.Printer, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Sale:      handler.NewSaleHandler(saleService),
		User:      handler.NewUserHandler(userService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Report:    handler.NewReportHandler(reportService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
