package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopmate/shopmate-api/internal/config"
	domainRepo "github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/internal/presentation/http/handler"
	"github.com/shopmate/shopmate-api/internal/presentation/http/middleware"
	"github.com/shopmate/shopmate-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Shop      *handler.ShopHandler
	Branch    *handler.BranchHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Customer  *handler.CustomerHandler
	Sale      *handler.SaleHandler
	Invoice   *handler.InvoiceHandler
	Expense   *handler.ExpenseHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	ShopRepo        domainRepo.ShopRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.PrometheusMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded files (product images)
	router.Static("/storage", deps.Cfg.Storage.Path)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerAccountRoutes(protected, h)

		// Shop-scoped routes: everything below resolves and requires a shop
		scoped := protected.Group("")
		scoped.Use(middleware.ShopMiddleware(deps.ShopRepo))

		rateLimiter := middleware.NewShopRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		scoped.Use(rateLimiter.Middleware())

		registerShopScopedRoutes(scoped, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}
}

// registerAccountRoutes are authenticated routes that work without a shop,
// so new users can create or join one
func registerAccountRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)

	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	protected.POST("/shops", h.Shop.Create)
	protected.GET("/shops/current", h.Shop.GetCurrent)
	protected.POST("/shops/join", h.Shop.Join)
}

func registerShopScopedRoutes(scoped *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	// Shop management (owner only)
	shops := scoped.Group("/shops")
	{
		shops.GET("/members", h.Shop.ListMembers)
		shops.PUT("/:id", middleware.RequireOwner(), h.Shop.Update)
		shops.POST("/members/review", middleware.RequireOwner(), h.Shop.ReviewMember)
		shops.DELETE("/members/:userId", middleware.RequireOwner(), h.Shop.RemoveMember)
	}

	// Branches
	branches := scoped.Group("/branches")
	{
		branches.GET("", h.Branch.List)
		branches.GET("/:id", h.Branch.Get)
		branches.POST("", middleware.RequireOwner(), h.Branch.Create)
		branches.PUT("/:id", middleware.RequireOwner(), h.Branch.Update)
		branches.DELETE("/:id", middleware.RequireOwner(), h.Branch.Delete)
		branches.POST("/:id/employees", middleware.RequireOwner(), h.Branch.AssignEmployee)
		branches.DELETE("/:id/employees/:userId", middleware.RequireOwner(), h.Branch.RemoveEmployee)
	}

	// Products
	products := scoped.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/recent", h.Product.Recent)
		products.GET("/:id", h.Product.Get)
		products.POST("", h.Product.Create)
		products.POST("/:id/image", h.Product.UploadImage)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	// Categories
	categories := scoped.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	// Customers
	customers := scoped.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	// Sales
	sales := scoped.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/pending", h.Sale.ListPending)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("", idempotency, h.Sale.Create)
		sales.POST("/:id/cancel", h.Sale.Cancel)
	}

	// Invoice composer
	invoices := scoped.Group("/invoices")
	{
		invoices.GET("/draft/:saleId", h.Invoice.Draft)
		invoices.POST("/preview/:saleId", h.Invoice.Preview)
		invoices.POST("/confirm/:saleId", idempotency, h.Invoice.Confirm)
		invoices.GET("/by-sale/:saleId", h.Invoice.BySale)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/pdf", h.Invoice.Download)
		invoices.POST("/:id/send", h.Invoice.Send)
	}

	// Expenses
	expenses := scoped.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.GET("/:id", h.Expense.Get)
		expenses.POST("", h.Expense.Create)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}

	// Dashboard and reports
	scoped.GET("/dashboard", h.Dashboard.Get)

	reports := scoped.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/statement", h.Report.Statement)
		reports.GET("/statement/export", h.Report.Export)
	}
}
