package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/config"
	"github.com/nguyenduy/opticart-api/internal/infrastructure/cache"
	"github.com/nguyenduy/opticart-api/internal/infrastructure/database"
	"github.com/nguyenduy/opticart-api/internal/infrastructure/messaging"
	"github.com/nguyenduy/opticart-api/internal/infrastructure/payment"
	"github.com/nguyenduy/opticart-api/internal/infrastructure/repository"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/handler"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/routes"
	"github.com/nguyenduy/opticart-api/pkg/email"
	"github.com/nguyenduy/opticart-api/pkg/oauth"
	"github.com/nguyenduy/opticart-api/pkg/printer"
	"github.com/nguyenduy/opticart-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Connect to Redis (selection sessions and carts)
	redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Connect to RabbitMQ and declare the checkout topology
	mq, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mq.Close()
	if err := mq.SetupQueues(cfg.Checkout.PaymentWindow); err != nil {
		log.Fatalf("Failed to declare queues: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	lensTypeRepo := repository.NewLensTypeRepository(db)
	lensRepo := repository.NewLensRepository(db)
	eyeGlassRepo := repository.NewEyeGlassRepository(db)
	productGlassRepo := repository.NewProductGlassRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	refractionRepo := repository.NewRefractionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderDetailRepo := repository.NewOrderDetailRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	exchangeRepo := repository.NewExchangeRepository(db)
	kioskRepo := repository.NewKioskRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Redis-backed stores
	selectionStore := cache.NewSelectionStore(redisClient)
	cartStore := cache.NewCartStore(redisClient)

	// Messaging and payments
	publisher := messaging.NewEventPublisher(mq)
	gateway := payment.NewHTTPGateway(cfg.Payment.GatewayURL, cfg.Payment.APIKey)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(accountRepo, roleRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	accountService := service.NewAccountService(accountRepo, roleRepo, permissionRepo, kioskRepo)
	catalogService := service.NewCatalogService(lensTypeRepo, lensRepo, eyeGlassRepo)
	profileService := service.NewProfileService(profileRepo)
	refractionService := service.NewRefractionService(refractionRepo, profileRepo)
	selectionService := service.NewSelectionService(
		selectionStore, eyeGlassRepo, lensRepo, profileRepo,
		refractionRepo, productGlassRepo, cartStore, cfg.Redis.SessionTTL,
	)
	checkoutService := service.NewCheckoutService(
		cartStore, productGlassRepo, eyeGlassRepo, voucherRepo, kioskRepo,
		accountRepo, orderRepo, orderDetailRepo, paymentRepo,
		gateway, publisher, emailService, cfg.Email.FrontendURL,
	)
	orderService := service.NewOrderService(orderRepo, productGlassRepo, eyeGlassRepo, voucherRepo)
	exchangeService := service.NewExchangeService(exchangeRepo, orderDetailRepo, orderRepo)
	voucherService := service.NewVoucherService(voucherRepo)
	kioskService := service.NewKioskService(kioskRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, orderRepo, eyeGlassRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	receiptService := service.NewReceiptService(thermalPrinter, orderRepo, cfg.Printer.Type, cfg.App.Name)

	// Start the unpaid-order expiry consumer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryConsumer := messaging.NewExpiryConsumer(mq, orderRepo, orderDetailRepo, eyeGlassRepo)
	go func() {
		if err := expiryConsumer.Start(ctx); err != nil {
			log.Printf("Expiry consumer stopped: %v", err)
		}
	}()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Account:   handler.NewAccountHandler(accountService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Profile:   handler.NewProfileHandler(profileService, refractionService),
		Selection: handler.NewSelectionHandler(selectionService),
		Checkout:  handler.NewCheckoutHandler(checkoutService),
		Order:     handler.NewOrderHandler(orderService),
		Exchange:  handler.NewExchangeHandler(exchangeService),
		Voucher:   handler.NewVoucherHandler(voucherService),
		Kiosk:     handler.NewKioskHandler(kioskService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Receipt:   handler.NewReceiptHandler(receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for a shutdown signal, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
