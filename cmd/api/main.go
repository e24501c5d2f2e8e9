package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/handler"
	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/middleware"
	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/repository"
	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/session"
	"github.com/lifelink/bloodlink/donor-community-service/internal/config"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/services"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	userRepo := repository.NewUserRepository(db)
	donorRepo := repository.NewDonorRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	sessions := session.NewRedisStore(redisClient, cfg.SessionTTL)

	notificationService := services.NewPushNotificationService(outboxRepo)
	authService := services.NewAuthService(userRepo, sessions, redisClient, notificationService, cfg.JWTPrivateKey)
	donorService := services.NewDonorService(donorRepo)
	requestService := services.NewRequestService(requestRepo)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, redisClient)
	metrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)

	authHandler := handler.NewAuthHandler(authService)
	donorHandler := handler.NewDonorHandler(donorService)
	requestHandler := handler.NewRequestHandler(requestService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	mux := http.NewServeMux()

	route := func(pattern string, h http.Handler) {
		mux.Handle(pattern, metrics.Instrument(pattern, h))
	}

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/health/ready", healthHandler.Ready)
	mux.HandleFunc("/health/live", healthHandler.Live)
	mux.Handle("/metrics", promhttp.Handler())

	// Auth endpoints
	route("/auth/login", http.HandlerFunc(authHandler.Login))
	route("/auth/register", http.HandlerFunc(authHandler.Register))
	route("/auth/logout", authMiddleware.RequireAuth(authHandler.Logout))
	route("/auth/me", authMiddleware.RequireAuth(authHandler.Me))
	route("/auth/profile", authMiddleware.RequireAuth(authHandler.UpdateProfile))
	route("/auth/verify", authMiddleware.RequireAuth(authHandler.VerifyAccount))
	route("/auth/verify/resend", authMiddleware.RequireAuth(authHandler.ResendVerificationCode))

	route("/auth/roles/assign",
		authMiddleware.RequireRole([]domain.Role{domain.RoleAdmin}, authHandler.AssignRole),
	)
	route("/auth/roles/revoke",
		authMiddleware.RequireRole([]domain.Role{domain.RoleAdmin}, authHandler.RevokeRole),
	)

	// Community resources: listings are public, submissions need a login
	route("/api/donors", methodGated(donorHandler.Donors, authMiddleware))
	route("/api/requests", methodGated(requestHandler.Requests, authMiddleware))

	route("/api/notifications",
		authMiddleware.RequireRole([]domain.Role{domain.RoleAdmin}, notificationHandler.SendPush),
	)

	handlerChain := middleware.CORS(cfg.AllowedOrigins)(mux)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handlerChain); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}

// methodGated leaves GET open and pushes every other method through
// authentication.
func methodGated(h http.HandlerFunc, auth *middleware.AuthMiddleware) http.HandlerFunc {
	authed := auth.RequireAuth(h)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h(w, r)
			return
		}
		authed(w, r)
	}
}
