package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mercadito/marketplace-api/docs"
	"github.com/mercadito/marketplace-api/internal/api/handler"
	"github.com/mercadito/marketplace-api/internal/api/middleware"
	"github.com/mercadito/marketplace-api/internal/api/policy"
	"github.com/mercadito/marketplace-api/internal/core/ports"
	"github.com/mercadito/marketplace-api/internal/core/service"
	"github.com/mercadito/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/mercadito/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mercadito/marketplace-api/internal/infrastructure/db/redis"
	"github.com/mercadito/marketplace-api/pkg/token"
)

// NewRouter builds the Echo instance with every middleware and route
// registered. The authentication gate and the authorization policy run
// globally, in that order, so no handler is reachable without passing the
// rule table.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, codec *token.Codec, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("marketplace"))
	e.Use(middleware.Authenticate(codec, log))
	e.Use(middleware.Authorize(policy.Default, audit))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, codec, throttle, audit, log)
	productService := service.NewProductService(productRepo, audit, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	orderService := service.NewOrderService(orderRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	orderHandler := handler.NewOrderHandler(orderService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Product routes ---
	e.GET("/products", productHandler.List)
	e.GET("/products/mine", productHandler.ListMine)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create)
	e.PUT("/products/:id", productHandler.Update)
	e.DELETE("/products/:id", productHandler.Delete)

	// --- Category routes ---
	e.GET("/categories", categoryHandler.List)
	e.GET("/categories/:id", categoryHandler.Get)
	e.POST("/categories", categoryHandler.Create)
	e.PUT("/categories/:id", categoryHandler.Update)
	e.DELETE("/categories/:id", categoryHandler.Delete)

	// --- Order routes ---
	e.GET("/orders/:id", orderHandler.Get)
	e.GET("/orders/user/:userId", orderHandler.ListByUser)
	e.POST("/orders", orderHandler.Create)
	e.PUT("/orders/:id", orderHandler.UpdateStatus)
	e.DELETE("/orders/:id", orderHandler.Delete)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
