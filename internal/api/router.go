package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oncallhq/user-directory/internal/api/handler"
	"github.com/oncallhq/user-directory/internal/api/middleware"
	"github.com/oncallhq/user-directory/internal/core/service"
	"github.com/oncallhq/user-directory/internal/infrastructure/config"
	"github.com/oncallhq/user-directory/internal/infrastructure/crypto"
	mongostore "github.com/oncallhq/user-directory/internal/infrastructure/db/mongo"
	"github.com/oncallhq/user-directory/internal/infrastructure/session"
	"github.com/oncallhq/user-directory/internal/infrastructure/upstream/pagerduty"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	hasher := crypto.NewBcryptHasher()

	sessions := session.NewManager(
		session.NewRedisStore(rdb, cfg.Session.KeyPrefix),
		cfg.Session.TTL,
	)
	cookie := session.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	}

	userService := service.NewUserService(userRepo, hasher, log)
	authService := service.NewAuthService(userRepo, hasher, log)
	policyService := service.NewPolicyService(
		pagerduty.NewClient(pagerduty.Config{
			BaseURL: cfg.Upstream.BaseURL,
			Token:   cfg.Upstream.Token,
			Timeout: cfg.Upstream.Timeout,
		}, log),
		log,
	)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService, userService, sessions, cookie)
	policyHandler := handler.NewPolicyHandler(policyService)

	// Session resolution runs on every request; access decisions happen in
	// the services, never here.
	e.Use(middleware.ResolveSession(sessions, cookie))

	// --- API routes ---
	apiGroup := e.Group("/api")

	auth := apiGroup.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)
	auth.PUT("/update", authHandler.UpdateProfile)

	// Verb-style paths are the wire contract existing clients depend on.
	users := apiGroup.Group("/users")
	users.GET("/list", userHandler.List)
	users.GET("/search", userHandler.Search)
	users.GET("/get/:id", userHandler.Get)
	users.POST("/create", userHandler.Create)
	users.PUT("/update/:id", userHandler.Update)
	users.DELETE("/delete/:id", userHandler.Delete)

	apiGroup.GET("/escalation-policies/list", policyHandler.List)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
