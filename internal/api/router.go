package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sthaniya/sthaniya-api/docs"
	"github.com/sthaniya/sthaniya-api/internal/api/handler"
	"github.com/sthaniya/sthaniya-api/internal/api/middleware"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
	"github.com/sthaniya/sthaniya-api/internal/core/service"
	"github.com/sthaniya/sthaniya-api/internal/infrastructure/config"
	mongodb "github.com/sthaniya/sthaniya-api/internal/infrastructure/db/mongo"
)

// Deps carries the externally constructed collaborators the router wires into
// handlers. Redis is nil when the in-memory code store is active.
type Deps struct {
	DB       *mongo.Database
	Redis    *redis.Client
	Codes    ports.CodeStore
	Mailer   ports.Mailer
	Identity ports.IdentityVerifier
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("sthaniya"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	storyRepo := mongodb.NewStoryRepository(deps.DB)
	uploadRepo := mongodb.NewUploadRepository(deps.DB)

	authService := service.NewAuthService(userRepo, deps.Codes, deps.Mailer, deps.Identity, cfg.JWTSecret, 0, deps.Logger)
	storyService := service.NewStoryService(storyRepo, deps.Logger)
	uploadService := service.NewUploadService(uploadRepo, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	storyHandler := handler.NewStoryHandler(storyService)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.UploadDir, deps.Logger)
	authRequired := middleware.Auth(cfg.JWTSecret, userRepo)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/send-verification", authHandler.SendVerification)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/google-register", authHandler.GoogleRegister)
	auth.POST("/verify-google-registration", authHandler.VerifyGoogleRegistration)
	auth.POST("/google-login", authHandler.GoogleLogin)
	auth.GET("/profile", authHandler.Profile, authRequired)
	auth.PUT("/update-role", authHandler.UpdateRole, authRequired)

	// --- Story routes ---
	stories := e.Group("/api/stories")
	stories.POST("/create", storyHandler.Create, authRequired)
	stories.GET("/my/stories", storyHandler.ListMine, authRequired)
	stories.GET("/user/:id", storyHandler.ListByUser, authRequired)
	stories.GET("/:id", storyHandler.Get, authRequired)
	stories.PUT("/:id", storyHandler.Update, authRequired)
	stories.DELETE("/:id", storyHandler.Delete, authRequired)
	stories.POST("/:id/like", storyHandler.Like, authRequired)
	stories.POST("/:id/comment", storyHandler.Comment, authRequired)
	stories.DELETE("/:id/comment/:commentId", storyHandler.DeleteComment, authRequired)

	// --- Anonymous upload flow (shares the /api/stories prefix) ---
	stories.POST("/upload", uploadHandler.Create)
	stories.GET("/all", uploadHandler.ListAll)
	stories.GET("/my/:email", uploadHandler.ListByEmail)

	// --- Static uploads ---
	e.Static("/uploads", cfg.UploadDir)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
