package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

const dependencyCheckTimeout = 5 * time.Second

// HealthHandler serves the orchestrator probes for the API process.
type HealthHandler struct {
	db          *sql.DB
	redisClient ports.RedisClient
	startTime   time.Time
	version     string
}

func NewHealthHandler(db *sql.DB, redisClient ports.RedisClient) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		startTime:   time.Now(),
		version:     version,
	}
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is the liveness probe: it only confirms the process responds.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	})
}

// Live is an alias for Health.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

// Ready is the readiness probe: the service accepts traffic only when
// both Postgres and Redis answer.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := map[string]Check{
		"database": h.checkDependency("database", h.pingDatabase),
		"redis":    h.checkDependency("redis", h.pingRedis),
	}

	status, httpStatus := "UP", http.StatusOK
	for _, c := range checks {
		if c.Status != "UP" {
			status, httpStatus = "DOWN", http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, httpStatus, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

func (h *HealthHandler) checkDependency(name string, ping func(context.Context) error) Check {
	ctx, cancel := context.WithTimeout(context.Background(), dependencyCheckTimeout)
	defer cancel()

	if err := ping(ctx); err != nil {
		return Check{Status: "DOWN", Message: "cannot reach " + name}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	if h.db == nil {
		return errNotInitialized
	}
	return h.db.PingContext(ctx)
}

func (h *HealthHandler) pingRedis(ctx context.Context) error {
	if h.redisClient == nil {
		return errNotInitialized
	}
	return h.redisClient.Ping(ctx).Err()
}

var errNotInitialized = errors.New("connection not initialized")
