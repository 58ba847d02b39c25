package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/animal-shelter/internal/config"
	"github.com/iliyamo/animal-shelter/internal/handler"    // import the handlers that implement the endpoints
	"github.com/iliyamo/animal-shelter/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/animal-shelter/internal/service"
)

// Options carries everything New needs.  Redis may be nil; caching and
// rate limiting are then skipped.
type Options struct {
	Services  *service.Services
	JWTSecret string
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	// Checks are reported by /healthz.
	Checks map[string]handler.Check
}

// New builds the Echo instance with the error handler, the request
// logger and every route registered.
func New(o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, handler.NewHealthHandler(o.Checks))
	RegisterAuth(e, handler.NewAuthHandler(o.Services.Auth), o)
	RegisterAnimals(e, handler.NewAnimalHandler(o.Services.Animals), o)
	RegisterStaff(e,
		handler.NewUserHandler(o.Services.Users),
		handler.NewVolunteerHandler(o.Services.Volunteers),
		o.JWTSecret)
	RegisterCare(e,
		handler.NewReservationHandler(o.Services.Reservations),
		handler.NewExaminationHandler(o.Services.Examinations),
		handler.NewMedicationHandler(o.Services.Medications),
		o.JWTSecret)
	return e
}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service and its store are up.
	e.GET("/healthz", h.Health)
}

// RegisterAuth registers the authentication routes.  Register and login
// are public and rate limited per client; /me needs a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, o Options) {
	g := e.Group("/api/authentication")
	limit := middleware.NewTokenBucket(o.RateLimit, o.Redis)
	g.POST("/register", a.Register, limit)
	g.POST("/login", a.Login, limit)

	g.GET("/me", a.Me, middleware.JWTAuth(o.JWTSecret))
}
