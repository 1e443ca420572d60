package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nguyenduy/opticart-api/internal/config"
	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/handler"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/middleware"
	"github.com/nguyenduy/opticart-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Account   *handler.AccountHandler
	Catalog   *handler.CatalogHandler
	Profile   *handler.ProfileHandler
	Selection *handler.SelectionHandler
	Checkout  *handler.CheckoutHandler
	Order     *handler.OrderHandler
	Exchange  *handler.ExchangeHandler
	Voucher   *handler.VoucherHandler
	Kiosk     *handler.KioskHandler
	Dashboard *handler.DashboardHandler
	Receipt   *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
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

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerPublicRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-account rate limiter
		rateLimiter := middleware.NewAccountRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerCustomerRoutes(protected, h, deps)
		registerStaffRoutes(protected, h)
	}

	return router
}

func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}

	// Catalog browsing is open to everyone
	v1.GET("/frames", h.Catalog.ListFrames)
	v1.GET("/frames/:id", h.Catalog.GetFrame)
	v1.GET("/lenses", h.Catalog.ListLensOptions)
	v1.GET("/lenses/:id", h.Catalog.GetLens)

	// Pickup locations and voucher checks
	v1.GET("/kiosks", h.Kiosk.ListPickup)
	v1.GET("/vouchers/:code", h.Voucher.Check)

	// Payment provider webhook (authenticated by payment code, not JWT)
	v1.POST("/payments/webhook", h.Checkout.ConfirmPayment)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Account routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/me", h.Auth.GetMe)
	protected.PUT("/me", h.Auth.UpdateMe)
	protected.PUT("/me/password", h.Auth.ChangePassword)

	// Wearer profiles and refraction records
	profiles := protected.Group("/profiles")
	{
		profiles.GET("", h.Profile.List)
		profiles.POST("", h.Profile.Create)
		profiles.GET("/:id", h.Profile.Get)
		profiles.PUT("/:id", h.Profile.Update)
		profiles.DELETE("/:id", h.Profile.Delete)
		profiles.GET("/:id/records", h.Profile.ListRecords)
	}

	// Lens selection wizard
	selection := protected.Group("/selection")
	{
		selection.POST("", h.Selection.Start)
		selection.GET("", h.Selection.Get)
		selection.DELETE("", h.Selection.Abandon)
		selection.POST("/lens", h.Selection.ChooseLens)
		selection.POST("/profile", h.Selection.ChooseProfile)
		selection.GET("/records", h.Selection.ListRecords)
		selection.POST("/record", h.Selection.ChooseRecord)
		selection.POST("/fresh", h.Selection.FreshStart)
		selection.POST("/prescription", h.Selection.SubmitPrescription)
		selection.POST("/back", h.Selection.Back)
	}

	// Cart
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Checkout.GetCart)
		cart.DELETE("", h.Checkout.ClearCart)
		cart.DELETE("/:id", h.Checkout.RemoveFromCart)
	}

	// Checkout
	checkout := protected.Group("/checkout")
	{
		checkout.POST("/quote", h.Checkout.Quote)
		// Order placement uses idempotency middleware to prevent duplicates
		checkout.POST("/orders", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Checkout.PlaceOrder)
	}

	// Orders
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/remainder", h.Checkout.PayRemainder)
	}

	// Exchanges
	exchanges := protected.Group("/exchanges")
	{
		exchanges.GET("", h.Exchange.ListMine)
		exchanges.POST("", h.Exchange.Create)
		exchanges.GET("/:id", h.Exchange.Get)
	}
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers) {
	staff := protected.Group("/staff")
	staff.Use(middleware.RequireRole("staff", "admin"))
	{
		// Dashboard
		staff.GET("/dashboard", h.Dashboard.GetStats)

		// Catalog management
		staff.POST("/frames", h.Catalog.CreateFrame)
		staff.PUT("/frames/:id", h.Catalog.UpdateFrame)
		staff.DELETE("/frames/:id", h.Catalog.DeleteFrame)
		staff.GET("/frames/low-stock", h.Catalog.GetLowStockFrames)
		staff.POST("/lenses", h.Catalog.CreateLens)
		staff.POST("/lens-types", h.Catalog.CreateLensType)

		// Refraction exams
		staff.POST("/records", h.Profile.CreateRecord)

		// Order management
		staff.PUT("/orders/:id/status", h.Order.UpdateStatus)

		// Exchange queue
		staff.GET("/exchanges", h.Exchange.ListQueue)
		staff.PUT("/exchanges/:id", h.Exchange.Resolve)
		staff.POST("/exchanges/:id/complete", h.Exchange.Complete)

		// Vouchers
		staff.GET("/vouchers", h.Voucher.List)
		staff.POST("/vouchers", h.Voucher.Create)
		staff.PUT("/vouchers/:id", h.Voucher.Update)
		staff.DELETE("/vouchers/:id", h.Voucher.Delete)

		// Receipt printing
		staff.GET("/printer/status", h.Receipt.GetStatus)
		staff.POST("/printer/test", h.Receipt.TestPrint)
		staff.POST("/orders/:id/receipt", h.Receipt.PrintOrderReceipt)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole("admin"))
	{
		// Account management
		admin.GET("/accounts", h.Account.List)
		admin.GET("/accounts/:id", h.Account.Get)
		admin.POST("/accounts/staff", h.Account.CreateStaff)
		admin.PUT("/accounts/:id/roles", h.Account.UpdateRoles)
		admin.DELETE("/accounts/:id", h.Account.Delete)
		admin.GET("/roles", h.Account.ListRoles)
		admin.GET("/permissions", h.Account.ListPermissions)

		// Kiosk management
		admin.GET("/kiosks", h.Kiosk.List)
		admin.GET("/kiosks/:id", h.Kiosk.Get)
		admin.POST("/kiosks", h.Kiosk.Create)
		admin.PUT("/kiosks/:id", h.Kiosk.Update)
		admin.DELETE("/kiosks/:id", h.Kiosk.Delete)
	}
}
