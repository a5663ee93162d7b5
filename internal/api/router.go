package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/kapurocks/directory/docs"
	"github.com/kapurocks/directory/internal/api/handler"
	"github.com/kapurocks/directory/internal/api/middleware"
	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

// Tokens issues and verifies session tokens.
type Tokens interface {
	handler.TokenIssuer
	middleware.TokenParser
}

// Dependencies is everything the HTTP layer needs from the application.
type Dependencies struct {
	Accounts ports.AccountService
	Sessions ports.SessionService
	Content  ports.ContentService
	Owner    ports.OwnerService
	Tokens   Tokens
	// Ready lists the dependencies checked by the readiness probe.
	Ready          map[string]handler.Pinger
	RequestTimeout time.Duration
	Logger         zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "directory",
		Registerer: registerer,
	}))
	if deps.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
			Timeout: deps.RequestTimeout,
		}))
	}

	authHandler := handler.NewAuthHandler(deps.Accounts, deps.Sessions, deps.Tokens)
	meHandler := handler.NewMeHandler(deps.Accounts, deps.Sessions, deps.Tokens)
	contentHandler := handler.NewContentHandler(deps.Content)
	ownerHandler := handler.NewOwnerHandler(deps.Owner)
	authMiddleware := middleware.Auth(deps.Tokens, deps.Accounts)
	require := middleware.RequirePrivilege

	v1 := e.Group("/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/otp", authHandler.IssueCode)
	auth.POST("/logout", authHandler.Logout, authMiddleware)
	auth.POST("/recover", authHandler.RequestReset)
	auth.POST("/recover/username", authHandler.RecoverUsername)
	auth.POST("/reset", authHandler.Reset)

	me := v1.Group("/me", authMiddleware)
	me.GET("", meHandler.Get)
	me.POST("/link", meHandler.Link)
	me.PUT("/admin-mode", meHandler.SetAdminMode, require(domain.PrivViewPending))

	// --- Directory ---
	v1.GET("/businesses", contentHandler.ListBusinesses)
	v1.GET("/meetings", contentHandler.ListMeetings)
	v1.GET("/achievements", contentHandler.ListAchievements)
	v1.POST("/businesses", contentHandler.SubmitBusiness, authMiddleware, require(domain.KindBusiness.Privilege()))
	v1.POST("/meetings", contentHandler.SubmitMeeting, authMiddleware, require(domain.KindMeeting.Privilege()))
	v1.POST("/achievements", contentHandler.SubmitAchievement, authMiddleware, require(domain.KindAchievement.Privilege()))

	// --- Review ---
	admin := v1.Group("/admin", authMiddleware)
	admin.GET("/pending", contentHandler.Pending, require(domain.PrivViewPending))
	admin.GET("/pending/:kind", contentHandler.Pending, require(domain.PrivViewPending))
	admin.POST("/:kind/:id/approve", contentHandler.Approve, require(domain.PrivApproveContent))
	admin.POST("/:kind/:id/reject", contentHandler.Reject, require(domain.PrivRejectContent))
	admin.PUT("/:kind/:id/status", contentHandler.UpdateStatus, require(domain.PrivOverrideStatus))

	// --- Owner administration ---
	owner := v1.Group("/owner", authMiddleware, require(domain.PrivManageUsers))
	owner.GET("/users", ownerHandler.ListUsers)
	owner.POST("/users/:id/promote", ownerHandler.Promote)
	owner.POST("/users/:id/demote", ownerHandler.Demote)
	owner.DELETE("/users/:id", ownerHandler.Remove)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Ready)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
