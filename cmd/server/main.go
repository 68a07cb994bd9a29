package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appfba "github.com/stcadmin/backend/internal/application/fba"
	appshipment "github.com/stcadmin/backend/internal/application/shipment"
	"github.com/stcadmin/backend/internal/infrastructure/auth"
	"github.com/stcadmin/backend/internal/infrastructure/config"
	"github.com/stcadmin/backend/internal/infrastructure/logger"
	"github.com/stcadmin/backend/internal/infrastructure/parcelhub"
	"github.com/stcadmin/backend/internal/infrastructure/persistence"
	"github.com/stcadmin/backend/internal/infrastructure/stockcheck"
	"github.com/stcadmin/backend/internal/interfaces/http/handler"
	"github.com/stcadmin/backend/internal/interfaces/http/middleware"
	"github.com/stcadmin/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting STC Admin backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := persistence.Migrate(db.DB); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	fbaOrderRepo := persistence.NewGormFBAOrderRepository(db.DB)
	regionRepo := persistence.NewGormRegionRepository(db.DB)
	shipmentOrderRepo := persistence.NewGormShipmentOrderRepository(db.DB)
	destinationRepo := persistence.NewGormDestinationRepository(db.DB)
	methodRepo := persistence.NewGormMethodRepository(db.DB)
	filingRepo := persistence.NewGormFilingRepository(db.DB)
	exportRepo := persistence.NewGormExportRepository(db.DB)
	configRepo := persistence.NewGormConfigRepository(db.DB)

	// External clients
	stockClient := stockcheck.NewClient(cfg.StockCheck.BaseURL, cfg.StockCheck.Timeout, log)
	carrierClient := parcelhub.NewClient(
		cfg.Parcelhub.BaseURL,
		parcelhub.Credentials{
			Username:  cfg.Parcelhub.Username,
			Password:  cfg.Parcelhub.Password,
			AccountID: cfg.Parcelhub.AccountID,
		},
		configRepo,
		cfg.Parcelhub.Timeout,
		log,
	)

	// Application services
	fbaOrderService := appfba.NewOrderService(fbaOrderRepo, regionRepo, stockClient, log)
	priceService := appfba.NewPriceService(regionRepo, log)
	shipmentOrderService := appshipment.NewOrderService(shipmentOrderRepo, destinationRepo, methodRepo, log)
	filingService := appshipment.NewFilingService(shipmentOrderRepo, filingRepo, carrierClient, log)
	exportService := appshipment.NewExportService(shipmentOrderRepo, exportRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	fbaHandler := handler.NewFBAHandler(fbaOrderService, priceService)
	shipmentHandler := handler.NewShipmentHandler(shipmentOrderService, filingService)
	exportHandler := handler.NewExportHandler(exportService)
	shippingAPIHandler := handler.NewShippingAPIHandler(shipmentOrderService, exportService, configRepo, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(log))

	engine.GET("/health", healthHandler(db, log))

	// Operator routes require a JWT with the "fba" group; the shipping
	// API authenticates each request with its own form token instead.
	jwtAuth := middleware.JWTAuth(jwtService, log)
	requireFBA := middleware.RequireGroup("fba")
	router.NewRouter(engine).
		Register(fbaHandler, jwtAuth, requireFBA).
		Register(shipmentHandler, jwtAuth, requireFBA).
		Register(exportHandler, jwtAuth, requireFBA).
		Register(shippingAPIHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Warn("Health check failed", zap.Error(err))
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
