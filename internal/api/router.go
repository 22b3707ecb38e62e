package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/dinith-rusiru/internExam1/docs"
	"github.com/dinith-rusiru/internExam1/internal/api/handler"
	"github.com/dinith-rusiru/internExam1/internal/api/middleware"
	"github.com/dinith-rusiru/internExam1/internal/core/domain"
	"github.com/dinith-rusiru/internExam1/internal/core/service"
	"github.com/dinith-rusiru/internExam1/internal/infrastructure/config"
	mongodb "github.com/dinith-rusiru/internExam1/internal/infrastructure/db/mongo"
	redisdb "github.com/dinith-rusiru/internExam1/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("adminpanel"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	denylist := redisdb.NewDenylist(rdb)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo)
	authHandler := handler.NewAuthHandler(authService, denylist)
	userHandler := handler.NewUserHandler(userService)

	requireAuth := middleware.Auth(cfg.JWTSecret, denylist)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret, denylist)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- API routes ---
	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register, optionalAuth)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.POST("/logout", authHandler.Logout, requireAuth)

	users := v1.Group("/users", requireAuth, adminOnly)
	users.GET("", userHandler.List)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
