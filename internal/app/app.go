package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"gymgrub_backend/database"
	"gymgrub_backend/internal/config"
	"gymgrub_backend/internal/handlers"
	"gymgrub_backend/internal/lightning"
	"gymgrub_backend/internal/logger"
	"gymgrub_backend/internal/middleware"
	"gymgrub_backend/internal/models"
	"gymgrub_backend/internal/payment"
	"gymgrub_backend/internal/repositories"
	"gymgrub_backend/internal/routes"
	"gymgrub_backend/internal/services"
	"gymgrub_backend/internal/validator"
	"gymgrub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}
	if err := seedPlans(gormDB); err != nil {
		logger.Fatal("Failed to seed plan catalog", "error", err)
	}

	ginRouter, serviceContainer, ledger := SetupRouter(cfg, gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	startWorkers(ctx, cfg, gormDB, serviceContainer, ledger)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer, payment.Ledger) {
	wallet := lightning.NewBarkClient(
		cfg.Payment.WalletBin,
		time.Duration(cfg.Payment.WalletTimeout)*time.Second,
	)
	ledger := payment.NewMemoryLedger()

	serviceContainer := initializeServices(cfg, gormDB, wallet, ledger)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, cfg.Metrics.Enabled)

	return ginRouter, serviceContainer, ledger
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, wallet lightning.Wallet, ledger payment.Ledger) *services.ServiceContainer {
	subscriptionRepo := repositories.NewSubscriptionRepository(gormDB)

	paymentService := services.NewPaymentService(wallet, ledger, subscriptionRepo, cfg.Payment.SatsPerUSD)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo)
	analyticsService := services.NewAnalyticsService()

	return &services.ServiceContainer{
		PaymentService:      paymentService,
		SubscriptionService: subscriptionService,
		AnalyticsService:    analyticsService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		PaymentHandler:      handlers.NewPaymentHandler(baseHandler, services.PaymentService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, services.SubscriptionService),
		AnalyticsHandler:    handlers.NewAnalyticsHandler(baseHandler, services.AnalyticsService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, svc *services.ServiceContainer, ledger payment.Ledger) {
	subscriptionRepo := repositories.NewSubscriptionRepository(gormDB)

	paymentWorker := workers.NewPaymentWorker(
		ledger,
		svc.PaymentService,
		time.Duration(cfg.Payment.ReconcileEvery)*time.Second,
	)
	paymentWorker.Start(ctx)

	subscriptionWorker := workers.NewSubscriptionWorker(
		subscriptionRepo,
		time.Duration(cfg.Payment.ExpirySweep)*time.Second,
	)
	subscriptionWorker.Start(ctx)

	logger.Info("Background workers started")
}

// seedPlans inserts the plan catalog when it is missing. Idempotent:
// existing rows are left untouched so price edits in the DB survive
// restarts.
func seedPlans(db *gorm.DB) error {
	plans := []models.Plan{
		{
			ID:       "monthly",
			Name:     "Monthly Premium",
			PriceUSD: 9.99,
			Currency: "USD",
			Features: datatypes.JSON([]byte(`["Unlimited workout logs","Advanced calorie tracking","Progress analytics","Export data","Priority support"]`)),
			IsActive: true,
		},
		{
			ID:       "yearly",
			Name:     "Yearly Premium",
			PriceUSD: 99.99,
			Currency: "USD",
			Features: datatypes.JSON([]byte(`["Everything in Monthly","Save $20/year","Early access to new features","Custom meal plans","Personal trainer tips"]`)),
			IsActive: true,
		},
	}

	for i := range plans {
		var existing models.Plan
		result := db.Where("id = ?", plans[i].ID).First(&existing)
		if result.Error == nil {
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for plan %s: %w", plans[i].ID, result.Error)
		}
		if err := db.Create(&plans[i]).Error; err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", plans[i].ID, err)
		}
		logger.Info("Seeded plan", "plan_id", plans[i].ID)
	}
	return nil
}
