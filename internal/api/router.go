package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sportsclub/portal/docs"
	"github.com/sportsclub/portal/internal/api/handler"
	"github.com/sportsclub/portal/internal/api/middleware"
	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
	"github.com/sportsclub/portal/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Auth          ports.AuthService
	Users         ports.UserService
	Registrations ports.RegistrationService
	Sports        ports.SportService
	Events        ports.EventService
	Tokens        ports.TokenVerifier

	// Readiness checks reported by /health/ready, keyed by dependency name.
	Readiness map[string]handlers.Check
	// CORSOrigins defaults to "*" when empty.
	CORSOrigins []string
	// Registry receives HTTP metrics and backs /metrics. Nil means the
	// Prometheus default registry.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	promMW := echoprometheus.MiddlewareConfig{Subsystem: "portal", Skipper: skipMetrics}
	promHandler := echoprometheus.NewHandler()
	if deps.Registry != nil {
		promMW.Registerer = deps.Registry
		promHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Registry})
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promMW))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	registrationHandler := handler.NewRegistrationHandler(deps.Registrations)
	sportHandler := handler.NewSportHandler(deps.Sports)
	eventHandler := handler.NewEventHandler(deps.Events)

	authMiddleware := middleware.Auth(deps.Tokens, deps.Logger)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	studentOnly := middleware.RBAC(domain.RoleStudent)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Users ---
	users := e.Group("/users", authMiddleware)
	users.GET("/profile/:id", userHandler.GetProfile)
	users.PUT("/profile/:id", userHandler.UpdateProfile)
	users.GET("/students", userHandler.ListStudents, adminOnly)
	users.PUT("/students/:id/status", userHandler.SetStudentStatus, adminOnly)

	// --- Registrations ---
	registrations := e.Group("/registrations", authMiddleware)
	registrations.POST("", registrationHandler.Submit, studentOnly)
	registrations.GET("", registrationHandler.List)
	registrations.GET("/teams", registrationHandler.Teams)
	registrations.GET("/:id", registrationHandler.Get)
	registrations.PUT("/:id/status", registrationHandler.SetStatus, adminOnly)

	// --- Sports & events ---
	e.GET("/sports", sportHandler.List)
	e.POST("/sports", sportHandler.Create, authMiddleware, adminOnly)
	e.DELETE("/sports/:id", sportHandler.Delete, authMiddleware, adminOnly)

	e.GET("/events", eventHandler.List)
	e.POST("/events", eventHandler.Create, authMiddleware, adminOnly)
	e.DELETE("/events/:id", eventHandler.Delete, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Operations ---
	e.GET("/metrics", promHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func skipMetrics(c echo.Context) bool {
	switch c.Path() {
	case "/metrics", "/health", "/health/ready":
		return true
	}
	return false
}
