package api

import (
	"database/sql"
	"fmt"
	"net"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/seon98/Trip-Backend/docs"
	"github.com/seon98/Trip-Backend/internal/api/handler"
	"github.com/seon98/Trip-Backend/internal/api/middleware"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

// Deps carries everything the router wires into handlers. The storage
// clients are used only by the readiness probe and may be nil.
type Deps struct {
	Log zerolog.Logger

	Auth           ports.AuthService
	Accommodations ports.AccommodationService
	Flights        ports.FlightService
	Bookings       ports.BookingService

	// Limiter throttles POST /api/token. Leave nil to disable.
	Limiter         middleware.Limiter
	RateLimitPrefix string
	// TrustedProxies lists the CIDR ranges whose X-Forwarded-For entries are
	// believed. Empty means the client IP is the socket peer.
	TrustedProxies []string

	Cookie handler.CookieOptions

	MySQL *sql.DB
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	extractor, err := newIPExtractor(d.TrustedProxies)
	if err != nil {
		return nil, err
	}
	e.IPExtractor = extractor

	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// HTTP metrics live in a per-router registry so several routers can
	// coexist in one process; /metrics gathers it with the default registry.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "Idempotency-Key"},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "trip",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	bearer := middleware.BearerAuth(d.Auth)
	cookie := middleware.CookieAuth(d.Auth, d.Log)
	admin := middleware.RequireAdmin()
	adminPage := middleware.RequireAdminPage()

	authHandler := handler.NewAuthHandler(d.Auth)
	accommodationHandler := handler.NewAccommodationHandler(d.Accommodations)
	flightHandler := handler.NewFlightHandler(d.Flights)
	bookingHandler := handler.NewBookingHandler(d.Bookings)
	adminHandler := handler.NewAdminHandler(d.Auth, d.Bookings)
	pageHandler := handler.NewPageHandler(d.Auth, d.Accommodations, d.Bookings, d.Cookie, d.Log)

	// --- JSON API ---
	api := e.Group("/api")
	api.POST("/token", authHandler.Token, middleware.RateLimit(d.Limiter, d.RateLimitPrefix, d.Log))
	api.POST("/users", authHandler.Register)
	api.GET("/users/me", authHandler.Me, bearer)

	api.POST("/bookings/accommodations/:id", bookingHandler.BookAccommodation, bearer)
	api.POST("/bookings/flights/:id", bookingHandler.BookFlight, bearer)
	api.GET("/bookings/my-bookings", bookingHandler.MyBookings, bearer)

	api.GET("/admin/users", adminHandler.Users, bearer, admin)
	api.GET("/admin/bookings", adminHandler.Bookings, bearer, admin)

	e.GET("/accommodations", accommodationHandler.List)
	e.GET("/accommodations/:id", accommodationHandler.Get)
	e.POST("/accommodations", accommodationHandler.Create, bearer)
	e.PUT("/accommodations/:id", accommodationHandler.Update, bearer)
	e.DELETE("/accommodations/:id", accommodationHandler.Delete, bearer)

	e.GET("/flights", flightHandler.List)
	e.GET("/flights/:id", flightHandler.Get)
	e.POST("/flights", flightHandler.Create, bearer, admin)

	// --- Pages (cookie session, anonymous allowed) ---
	e.GET("/", pageHandler.Home, cookie)
	e.GET("/register", pageHandler.RegisterForm, cookie)
	e.POST("/register", pageHandler.Register, cookie)
	e.GET("/login", pageHandler.LoginForm, cookie)
	e.POST("/login", pageHandler.Login, cookie)
	e.GET("/logout", pageHandler.Logout)
	e.GET("/accommodations/create", pageHandler.CreateAccommodationForm, cookie)
	e.POST("/accommodations/create", pageHandler.CreateAccommodation, cookie)
	e.GET("/my-bookings", pageHandler.MyBookings, cookie)
	e.GET("/admin/dashboard", pageHandler.AdminDashboard, cookie, adminPage)
	e.GET("/admin/users", pageHandler.AdminUsers, cookie, adminPage)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.MySQL, d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/api-root", handler.APIRoot)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// newIPExtractor decides how c.RealIP finds the client. Forwarding headers
// are only honoured when they arrive from one of the trusted ranges.
func newIPExtractor(trusted []string) (echo.IPExtractor, error) {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect(), nil
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trusted {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("router: trusted proxy %q: %w", cidr, err)
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}
