package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/grandvia/hotel-system/internal/api/handler"
	"github.com/grandvia/hotel-system/internal/api/middleware"
	"github.com/grandvia/hotel-system/internal/core/domain"
	"github.com/grandvia/hotel-system/internal/core/ports"
	"github.com/grandvia/hotel-system/internal/core/service"
	"github.com/grandvia/hotel-system/internal/infrastructure/config"
	mongodb "github.com/grandvia/hotel-system/internal/infrastructure/db/mongo"
	redisdb "github.com/grandvia/hotel-system/internal/infrastructure/db/redis"
	"github.com/grandvia/hotel-system/internal/infrastructure/gitcmd"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Every route carries an Access descriptor inspected by the single Authorize
// middleware; there is no implicit public route.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("hotel"))

	// --- Dependencies ---
	hasher, err := service.NewCredentialHasher(
		service.HashProfile(cfg.PasswordHash),
		service.HashProfile(cfg.PinHash),
	)
	if err != nil {
		return nil, err
	}

	userRepo := mongodb.NewUserRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	sessionService := service.NewSessionService(userRepo, sessionStore, hasher, audit, cfg.Session.TTL, log)
	updateService := service.NewUpdateService(cfg.Update.RepoPath, cfg.Update.Timeout, gitcmd.NewRunner(), audit, log)

	authHandler := handler.NewAuthHandler(sessionService, handler.CookieSettings{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.TTL,
		Secure: cfg.Session.CookieSecure,
	})
	updateHandler := handler.NewUpdateHandler(updateService)

	// --- Route access descriptors ---
	public := middleware.Access{Public: true}
	anyStaff := middleware.Access{}
	adminOnly := middleware.Access{Roles: []domain.Role{domain.RoleOwner, domain.RoleManager}}

	gate := func(access middleware.Access) echo.MiddlewareFunc {
		return middleware.Authorize(sessionService, cfg.Session.CookieName, access)
	}

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, gate(public))
	e.POST("/auth/logout", authHandler.Logout, gate(public))
	e.GET("/auth/me", authHandler.Me, gate(anyStaff))
	e.POST("/auth/users/:id/revoke-sessions", authHandler.RevokeSessions, gate(adminOnly))

	// --- Website update (invoked only after the gate + role check pass) ---
	e.POST("/admin/website/update", updateHandler.Trigger, gate(adminOnly))
	e.GET("/admin/website/status", updateHandler.Status, gate(adminOnly))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness, gate(public))            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness, gate(public)) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler(), gate(public))

	return e, nil
}
