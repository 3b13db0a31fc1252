package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/seon98/Trip-Backend/internal/api"
	"github.com/seon98/Trip-Backend/internal/api/handler"
	"github.com/seon98/Trip-Backend/internal/api/middleware"
	"github.com/seon98/Trip-Backend/internal/core/ports"
	"github.com/seon98/Trip-Backend/internal/core/service"
	"github.com/seon98/Trip-Backend/internal/infrastructure/config"
	"github.com/seon98/Trip-Backend/internal/infrastructure/db/memory"
	"github.com/seon98/Trip-Backend/internal/infrastructure/db/mongo"
	"github.com/seon98/Trip-Backend/internal/infrastructure/db/mysql"
	"github.com/seon98/Trip-Backend/internal/infrastructure/db/redis"
	"github.com/seon98/Trip-Backend/internal/infrastructure/queue"
	"github.com/seon98/Trip-Backend/internal/pkg/password"
	"github.com/seon98/Trip-Backend/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// repositories groups the persistence adapters selected at startup.
type repositories struct {
	users          ports.UserRepository
	accommodations ports.AccommodationRepository
	flights        ports.FlightRepository
	bookings       ports.BookingRepository
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "trip-backend",
	})

	// --- Relational store ---
	var (
		sqlDB *sql.DB
		repos repositories
	)
	if cfg.MySQL.DSN != "" {
		sqlDB, err = mysql.Open(ctx, mysql.Config{
			DSN:             cfg.MySQL.DSN,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
		})
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		if err := mysql.EnsureSchema(ctx, sqlDB); err != nil {
			return err
		}
		repos = repositories{
			users:          mysql.NewUserRepository(sqlDB),
			accommodations: mysql.NewAccommodationRepository(sqlDB),
			flights:        mysql.NewFlightRepository(sqlDB),
			bookings:       mysql.NewBookingRepository(sqlDB),
		}
		log.Info().Msg("using mysql store")
	} else {
		store := memory.NewStore()
		repos = repositories{
			users:          store.Users(),
			accommodations: store.Accommodations(),
			flights:        store.Flights(),
			bookings:       store.Bookings(),
		}
		log.Warn().Msg("MYSQL_DSN not set, using in-memory store")
	}

	// --- Redis: idempotency keys and login rate limiting ---
	var (
		rdb     *goredis.Client
		idem    ports.IdempotencyStore = memory.NewIdempotencyStore()
		limiter middleware.Limiter
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb)
		if cfg.RateLimit.Enabled {
			limiter = redis.NewRateLimiter(rdb, redis.BucketConfig{
				Capacity:       cfg.RateLimit.Capacity,
				RefillTokens:   cfg.RateLimit.RefillTokens,
				RefillInterval: cfg.RateLimit.RefillInterval,
				TTL:            cfg.RateLimit.TTL,
			})
		}
	}

	// --- Booking events: RabbitMQ fan-out and Mongo audit trail ---
	var (
		mdb       *mongodriver.Database
		audit     ports.AuditRepository
		publisher ports.EventPublisher
	)
	if cfg.Mongo.URI != "" {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		mdb = db
		audit = mongo.NewAuditRepository(db)
	}
	if cfg.RabbitMQ.URL != "" {
		rabbit, err := queue.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger.Component(log, "rabbitmq"))
		if err != nil {
			return err
		}
		defer rabbit.Close()
		publisher = rabbit
	}

	processor := service.NewBookingEventProcessor(publisher, audit, logger.Component(log, "events"))
	dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, processor, logger.Component(log, "dispatcher"))
	// Workers outlive the signal context so Shutdown can drain them.
	dispatcher.Start(context.WithoutCancel(ctx))

	// --- Core services ---
	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:    cfg.Auth.SecretKey,
		Algorithm: cfg.Auth.Algorithm,
		TTL:       cfg.Auth.TokenTTL(),
	})
	if err != nil {
		return err
	}
	auth := service.NewAuthService(repos.users, password.New(password.DefaultParams), tokens, log)

	e, err := api.NewRouter(api.Deps{
		Log:            log,
		Auth:           auth,
		Accommodations: service.NewAccommodationService(repos.accommodations, log),
		Flights:        service.NewFlightService(repos.flights, log),
		Bookings: service.NewBookingService(
			repos.bookings, repos.accommodations, repos.flights, idem, dispatcher, log,
		),
		Limiter:         limiter,
		RateLimitPrefix: cfg.RateLimit.Prefix,
		TrustedProxies:  cfg.TrustedProxies,
		Cookie:          handler.CookieOptions{Secure: cfg.CookieSecure, TTL: tokens.TTL()},
		MySQL:           sqlDB,
		Mongo:           mdb,
		Redis:           rdb,
	})
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	return shutdown(log, e.Shutdown, dispatcher.Shutdown)
}

// shutdown stops the HTTP server first so no new events are enqueued, then
// drains the dispatcher.
func shutdown(log zerolog.Logger, steps ...func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for _, step := range steps {
		if err := step(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown step failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
