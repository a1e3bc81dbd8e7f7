package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/weekly-exercises/catalog-api/docs"
	"github.com/weekly-exercises/catalog-api/internal/api/handler"
	"github.com/weekly-exercises/catalog-api/internal/api/middleware"
	"github.com/weekly-exercises/catalog-api/internal/core/domain"
	"github.com/weekly-exercises/catalog-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Logger  zerolog.Logger
	Tokens  ports.TokenVerifier
	Auth    ports.AuthService
	Movies  ports.MovieService
	Events  ports.EventService
	Pingers []handler.Pinger
	// Registry receives the HTTP request metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "catalog",
		Registerer: registerer,
	}))

	authMW := middleware.Auth(d.Tokens)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Health, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Pingers...)
	e.GET("/", healthHandler.Index)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/signup", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMW)

	// --- Movies: public reads, admin writes ---
	movieHandler := handler.NewMovieHandler(d.Movies)
	movies := e.Group("/movies")
	movies.GET("", movieHandler.List)
	movies.GET("/:id", movieHandler.Get)
	movies.POST("", movieHandler.Create, authMW, adminOnly)
	movies.PUT("/:id", movieHandler.Update, authMW, adminOnly)
	movies.PATCH("/:id", movieHandler.Patch, authMW, adminOnly)
	movies.DELETE("/:id", movieHandler.Delete, authMW, adminOnly)

	// --- Events: authenticated reads, admin writes; /items is an alias ---
	eventHandler := handler.NewEventHandler(d.Events)
	for _, prefix := range []string{"/events", "/items"} {
		events := e.Group(prefix, authMW)
		events.GET("", eventHandler.List)
		events.GET("/:id", eventHandler.Get)
		events.POST("", eventHandler.Create, adminOnly)
		events.PUT("/:id", eventHandler.Update, adminOnly)
		events.PATCH("/:id", eventHandler.Patch, adminOnly)
		events.DELETE("/:id", eventHandler.Delete, adminOnly)
	}

	return e
}
