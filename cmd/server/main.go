package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	billingapp "github.com/wms/backend/internal/application/billing"
	catalogapp "github.com/wms/backend/internal/application/catalog"
	inventoryapp "github.com/wms/backend/internal/application/inventory"
	ledgerapp "github.com/wms/backend/internal/application/ledger"
	varianceapp "github.com/wms/backend/internal/application/variance"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/cache"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"github.com/wms/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting WMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize the run guard that serializes recompute and generation
	// passes. Redis-backed when configured, otherwise in-process.
	var runGuard shared.RunGuard
	if cfg.Redis.Enabled {
		redisGuard, err := cache.NewRedisRunGuard(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisGuard.Close(); err != nil {
				log.Error("Error closing Redis run guard", zap.Error(err))
			}
		}()
		runGuard = redisGuard
		log.Info("Redis run guard initialized",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		memGuard := cache.NewInMemoryRunGuard()
		defer func() {
			_ = memGuard.Close()
		}()
		runGuard = memGuard
		log.Info("In-memory run guard initialized")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Initialize repositories
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	balanceRepo := persistence.NewGormBalanceRepository(db.DB)
	configRepo := persistence.NewGormWarehouseSkuConfigRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	skuRepo := persistence.NewGormSkuRepository(db.DB)
	costRateRepo := persistence.NewGormCostRateRepository(db.DB)
	storageLedgerRepo := persistence.NewGormStorageLedgerRepository(db.DB)
	reconciliationRepo := persistence.NewGormReconciliationRepository(db.DB)
	varianceRepo := persistence.NewGormPalletVarianceRepository(db.DB)

	// Engine metrics record run outcomes and poll pending variance counts
	engineMetrics, err := telemetry.NewEngineMetrics(telemetry.EngineMetricsConfig{
		Meter:            meterProvider.Meter("wms.engine"),
		Logger:           log,
		VarianceProvider: varianceRepo,
	})
	if err != nil {
		log.Fatal("Failed to initialize engine metrics", zap.Error(err))
	}
	defer engineMetrics.Stop()

	// Initialize application services
	transactionService := ledgerapp.NewTransactionService(transactionRepo, configRepo, warehouseRepo, skuRepo, log)
	balanceService := inventoryapp.NewBalanceService(transactionRepo, balanceRepo, configRepo, skuRepo, runGuard, log,
		inventoryapp.BalanceServiceConfig{GuardTTL: cfg.Billing.RunGuardTTL})
	storageLedgerService := billingapp.NewStorageLedgerService(balanceRepo, configRepo, costRateRepo, storageLedgerRepo,
		balanceService, runGuard, log,
		billingapp.StorageLedgerServiceConfig{
			StorageRateName: cfg.Billing.StorageRateName,
			GuardTTL:        cfg.Billing.RunGuardTTL,
		})
	reconciliationService := billingapp.NewReconciliationService(reconciliationRepo, storageLedgerRepo, warehouseRepo, log,
		billingapp.ReconciliationServiceConfig{
			Tolerance:       decimal.NewFromFloat(cfg.Billing.ReconciliationTolerance),
			StorageRateName: cfg.Billing.StorageRateName,
		})
	varianceService := varianceapp.NewVarianceService(transactionRepo, varianceRepo, log,
		varianceapp.VarianceServiceConfig{PendingThreshold: cfg.Billing.VariancePendingThreshold})
	warehouseService := catalogapp.NewWarehouseService(warehouseRepo, log)
	skuService := catalogapp.NewSkuService(skuRepo, log)
	configService := inventoryapp.NewConfigService(configRepo, log)
	costRateService := billingapp.NewCostRateService(costRateRepo, log)

	// Initialize HTTP handlers
	transactionHandler := handler.NewTransactionHandler(transactionService, engineMetrics)
	balanceHandler := handler.NewBalanceHandler(balanceService, engineMetrics)
	storageLedgerHandler := handler.NewStorageLedgerHandler(storageLedgerService, engineMetrics)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationService, engineMetrics)
	varianceHandler := handler.NewVarianceHandler(varianceService, engineMetrics)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	skuHandler := handler.NewSkuHandler(skuService)
	configHandler := handler.NewConfigHandler(configService)
	costRateHandler := handler.NewCostRateHandler(costRateService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(transactionHandler).
		Register(balanceHandler).
		Register(storageLedgerHandler).
		Register(reconciliationHandler).
		Register(varianceHandler).
		Register(warehouseHandler).
		Register(skuHandler).
		Register(configHandler).
		Register(costRateHandler).
		Register(systemHandler)
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
