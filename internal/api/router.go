package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vidtube/user-service/internal/api/handler"
	"github.com/vidtube/user-service/internal/api/middleware"
	"github.com/vidtube/user-service/internal/core/ports"
	"github.com/vidtube/user-service/internal/core/service"
	"github.com/vidtube/user-service/internal/infrastructure/config"
	mongodb "github.com/vidtube/user-service/internal/infrastructure/db/mongo"
	redisdb "github.com/vidtube/user-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	uploader ports.MediaUploader,
	events ports.EventSink,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("users"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokenService := service.NewTokenService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	profileCache := redisdb.NewProfileCache(rdb)
	userService := service.NewUserService(userRepo, uploader, tokenService, service.NewBcryptHasher(), profileCache, log)
	userHandler := handler.NewUserHandler(userService, events)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- User routes ---
	users := e.Group("/v1/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/logout", userHandler.Logout, authMiddleware)
	users.GET("/me", userHandler.Me, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
