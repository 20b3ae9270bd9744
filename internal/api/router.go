package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/pizzahub/pizza-service/docs"
	"github.com/pizzahub/pizza-service/internal/api/handler"
	"github.com/pizzahub/pizza-service/internal/api/middleware"
	"github.com/pizzahub/pizza-service/internal/core/credentials"
	"github.com/pizzahub/pizza-service/internal/core/ports"
	"github.com/pizzahub/pizza-service/internal/core/service"
	"github.com/pizzahub/pizza-service/internal/infrastructure/db/mysql"
	"github.com/pizzahub/pizza-service/internal/infrastructure/factory"
	"github.com/pizzahub/pizza-service/internal/pkg/config"
	"github.com/pizzahub/pizza-service/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *goredis.Client, tracker ports.ActivityTracker, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Component("http"))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pizza"))

	// --- Dependencies ---
	dbLog := logger.Component("database")
	userRepo := mysql.NewUserRepository(db, dbLog)
	sessionRepo := mysql.NewSessionRepository(db, dbLog)
	franchiseRepo := mysql.NewFranchiseRepository(db, dbLog)
	orderRepo := mysql.NewOrderRepository(db, dbLog)
	factoryClient := factory.NewClient(cfg.Factory.URL, cfg.Factory.APIKey, logger.Component("factory"))

	authService := service.NewAuthService(userRepo, sessionRepo, credentials.NewHasher(0), cfg.JWTSecret, logger.Component("auth"))
	franchiseService := service.NewFranchiseService(franchiseRepo, logger.Component("franchise"))
	orderService := service.NewOrderService(orderRepo, factoryClient, cfg.PageSize, logger.Component("order"))

	authHandler := handler.NewAuthHandler(authService)
	franchiseHandler := handler.NewFranchiseHandler(franchiseService)
	orderHandler := handler.NewOrderHandler(orderService)

	// Resolves the caller on every request; individual routes opt in to
	// RequireUser.
	e.Use(middleware.Auth(authService, tracker))

	// --- Auth routes ---
	e.POST("/api/auth", authHandler.Register)
	e.PUT("/api/auth", authHandler.Login)
	e.DELETE("/api/auth", authHandler.Logout, middleware.RequireUser())
	e.PUT("/api/auth/:userId", authHandler.UpdateUser, middleware.RequireUser())

	// --- Order routes ---
	e.GET("/api/order/menu", orderHandler.Menu)
	e.PUT("/api/order/menu", orderHandler.AddMenuItem, middleware.RequireUser())
	e.GET("/api/order", orderHandler.Orders, middleware.RequireUser())
	e.POST("/api/order", orderHandler.CreateOrder, middleware.RequireUser())

	// --- Franchise routes ---
	e.GET("/api/franchise", franchiseHandler.List)
	e.GET("/api/franchise/:userId", franchiseHandler.ListForUser, middleware.RequireUser())
	e.POST("/api/franchise", franchiseHandler.Create, middleware.RequireUser())
	e.DELETE("/api/franchise/:franchiseId", franchiseHandler.Delete, middleware.RequireUser())
	e.POST("/api/franchise/:franchiseId/store", franchiseHandler.CreateStore, middleware.RequireUser())
	e.DELETE("/api/franchise/:franchiseId/store/:storeId", franchiseHandler.DeleteStore, middleware.RequireUser())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
