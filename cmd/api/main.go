package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shopmate/shopmate-api/internal/application/service"
	"github.com/shopmate/shopmate-api/internal/config"
	"github.com/shopmate/shopmate-api/internal/infrastructure/cache"
	"github.com/shopmate/shopmate-api/internal/infrastructure/database"
	"github.com/shopmate/shopmate-api/internal/infrastructure/repository"
	"github.com/shopmate/shopmate-api/internal/presentation/http/handler"
	"github.com/shopmate/shopmate-api/internal/presentation/http/middleware"
	"github.com/shopmate/shopmate-api/internal/presentation/http/routes"
	"github.com/shopmate/shopmate-api/pkg/email"
	"github.com/shopmate/shopmate-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Seed demo data when configured
	if err := database.SeedDefaultData(db); err != nil {
		logrus.WithError(err).Warn("Failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	shopRepo := repository.NewShopRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Report cache: Redis when configured, otherwise recompute every request
	var reportCache cache.ReportCache
	if cfg.Redis.Addr != "" {
		reportCache, err = cache.NewRedisReportCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, report caching disabled")
			reportCache = cache.NewNoopReportCache()
		}
	} else {
		reportCache = cache.NewNoopReportCache()
	}

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.SMTP.Host,
		SMTPPort:     cfg.SMTP.Port,
		SMTPUsername: cfg.SMTP.Username,
		SMTPPassword: cfg.SMTP.Password,
		FromName:     cfg.SMTP.FromName,
		FromEmail:    cfg.SMTP.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService)
	shopService := service.NewShopService(shopRepo, userRepo)
	branchService := service.NewBranchService(branchRepo, shopRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	customerService := service.NewCustomerService(customerRepo)
	saleService := service.NewSaleService(saleRepo, saleItemRepo, productRepo, customerService)
	invoiceService := service.NewInvoiceService(invoiceRepo, saleRepo, shopRepo, emailService)
	expenseService := service.NewExpenseService(expenseRepo, branchRepo)
	dashboardService := service.NewDashboardService(productRepo, customerRepo, saleRepo, reportRepo)
	reportService := service.NewReportService(reportRepo, reportCache, cfg.Redis.ReportTTL)

	// Daily low stock alert emails
	stockAlertService := service.NewStockAlertService(productRepo, userRepo, emailService)
	stockAlertService.Start()
	defer stockAlertService.Stop()

	// Nightly purge of expired reset tokens and idempotency keys
	cleanupService := service.NewCleanupService(passwordResetRepo, idempotencyRepo)
	cleanupService.Start()
	defer cleanupService.Stop()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Shop:      handler.NewShopHandler(shopService),
		Branch:    handler.NewBranchHandler(branchService),
		Product:   handler.NewProductHandler(productService, &cfg.Storage),
		Category:  handler.NewCategoryHandler(categoryService),
		Customer:  handler.NewCustomerHandler(customerService),
		Sale:      handler.NewSaleHandler(saleService, reportService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Expense:   handler.NewExpenseHandler(expenseService, reportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Report:    handler.NewReportHandler(reportService),
	}

	// Register HTTP metrics before the router starts using them
	middleware.InitMetrics()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		ShopRepo:        shopRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logrus.WithFields(logrus.Fields{
		"service": cfg.App.Name,
		"env":     cfg.App.Env,
		"port":    port,
	}).Info("Starting server")

	if err := router.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
