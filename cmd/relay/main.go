package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/messaging"
	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/outbox"
	"github.com/lifelink/bloodlink/donor-community-service/internal/config"
)

func main() {
	log.Println("Starting outbox relay...")

	cfg := config.LoadRelayConfig()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("relay: failed to open database: %v", err)
	}
	defer db.Close()

	broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.NotificationsQueue)
	if err != nil {
		log.Fatalf("relay: failed to connect to RabbitMQ: %v", err)
	}
	defer broker.Close()
	log.Println("relay: connected to RabbitMQ")

	worker := outbox.NewRelay(db, cfg.DatabaseURL, broker)

	healthServer := newProbeServer(worker)
	go func() {
		log.Printf("relay: probe server on %s", healthServer.Addr)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("relay: probe server error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		if err := worker.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("relay: received %v, shutting down", sig)
	case err := <-errChan:
		log.Printf("relay: worker failed: %v", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("relay: probe server shutdown: %v", err)
	}

	log.Println("relay: shutdown complete")
}

// newProbeServer exposes the relay's liveness and readiness state for
// the orchestrator.
func newProbeServer(worker *outbox.Relay) *http.Server {
	probe := func(check func() bool) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			status, httpStatus := "UP", http.StatusOK
			if !check() {
				status, httpStatus = "DOWN", http.StatusServiceUnavailable
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(httpStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":    status,
				"component": "outbox-relay",
			})
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", probe(worker.IsHealthy))
	mux.HandleFunc("/health/ready", probe(worker.IsReady))

	return &http.Server{Addr: ":8090", Handler: mux}
}
