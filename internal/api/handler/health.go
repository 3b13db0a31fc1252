package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler handles the GET /health liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles the GET /health/ready readiness probe.
// Every dependency is optional; a nil client is reported as "disabled".
type HealthDependenciesHandler struct {
	mysql *sql.DB
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthDependenciesHandler(db *sql.DB, mdb *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		mysql: db,
		mongo: mdb,
		redis: rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness pings each configured dependency.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus, 3)
	healthy := true

	check := func(name string, enabled bool, ping func(context.Context) error) {
		if !enabled {
			deps[name] = dependencyStatus{Status: "disabled"}
			return
		}
		if err := ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			return
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	check("mysql", h.mysql != nil, func(ctx context.Context) error {
		return h.mysql.PingContext(ctx)
	})
	check("mongodb", h.mongo != nil, func(ctx context.Context) error {
		return h.mongo.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	})
	check("redis", h.redis != nil, func(ctx context.Context) error {
		return h.redis.Ping(ctx).Err()
	})

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

// APIRoot handles GET /api-root.
//
// @Summary      API banner
// @Tags         health
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api-root [get]
func APIRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Welcome to the Trip Backend API"})
}
