package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jpbarro/multi-t-inventory/internal/handler"
	"github.com/jpbarro/multi-t-inventory/internal/middleware"
	"github.com/jpbarro/multi-t-inventory/internal/ratelimit"
	"github.com/jpbarro/multi-t-inventory/internal/supply"
	"github.com/jpbarro/multi-t-inventory/pkg/config"
	"github.com/jpbarro/multi-t-inventory/pkg/database"
	"github.com/jpbarro/multi-t-inventory/pkg/jwtutil"
	"github.com/jpbarro/multi-t-inventory/pkg/logger"
	"github.com/jpbarro/multi-t-inventory/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting inventory service...", cfg.LogFields()...)

	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	jwtutil.Initialize(&cfg.JWT)

	handler.InitRateLimiter(ratelimit.New(cfg.RateLimit.LoginMaxAttempts, cfg.RateLimit.LoginWindow))
	handler.InitSupplyService(supply.NewMockService(
		cfg.Supplier.URL,
		cfg.Supplier.APIKey,
		cfg.Supplier.RequestDelay,
		log,
	))

	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.Metrics)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/signup", handler.Signup)
	auth.POST("/invite", handler.Invite, middleware.Auth)
	auth.GET("/me", handler.Me, middleware.Auth)

	// Product catalog - shared across tenants, mutation is superuser-only
	products := e.Group("/products", middleware.Auth)
	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProduct)
	products.POST("", handler.CreateProduct, middleware.RequireSuperuser)
	products.PATCH("/:id", handler.UpdateProduct, middleware.RequireSuperuser)
	products.DELETE("/:id", handler.DeleteProduct, middleware.RequireSuperuser)

	// Inventory - always scoped to the caller's tenant
	inventory := e.Group("/inventory", middleware.Auth)
	inventory.GET("", handler.ListInventory)
	inventory.POST("", handler.CreateInventory)
	inventory.GET("/:product_id", handler.GetInventoryByProduct)
	inventory.PATCH("/:id", handler.UpdateInventory)
	inventory.POST("/:id/resupply", handler.Resupply)

	// Tenant administration
	e.GET("/tenants", handler.ListTenants, middleware.Auth, middleware.RequireSuperuser)

	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
