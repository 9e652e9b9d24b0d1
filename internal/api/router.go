package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/holidaydesk/vacation-system/docs"
	"github.com/holidaydesk/vacation-system/internal/api/handler"
	"github.com/holidaydesk/vacation-system/internal/api/middleware"
	"github.com/holidaydesk/vacation-system/internal/core/domain"
	"github.com/holidaydesk/vacation-system/internal/core/ports"
	healthhandlers "github.com/holidaydesk/vacation-system/internal/infrastructure/http/handlers"
)

// Dependencies bundles everything the router needs to register routes.
type Dependencies struct {
	AuthService     ports.AuthService
	VacationService ports.VacationService
	Mongo           *mongo.Database
	Redis           *redis.Client
	JWTSecret       string
	Logger          zerolog.Logger
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
	e.Use(echoprometheus.NewMiddleware("vacation"))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	vacationHandler := handler.NewVacationHandler(deps.VacationService)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Vacation routes ---
	v1 := e.Group("/v1/vacations", authMiddleware)
	v1.POST("", vacationHandler.Create, middleware.RequireAction(domain.ActionRequestVacation))
	v1.POST("/:id/approve", vacationHandler.Approve, middleware.RequireAction(domain.ActionApproveVacation))
	v1.POST("/:id/reject", vacationHandler.Reject, middleware.RequireAction(domain.ActionRejectVacation))
	v1.GET("/pending", vacationHandler.ListPending, middleware.RequireAction(domain.ActionViewPendingQueue))
	v1.GET("/history", vacationHandler.ListHistory, middleware.RequireAction(domain.ActionViewOwnHistory))

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
