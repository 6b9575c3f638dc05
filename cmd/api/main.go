package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/persona/persona-api/internal/config"
	"github.com/persona/persona-api/internal/domain/admin"
	"github.com/persona/persona-api/internal/domain/auth"
	"github.com/persona/persona-api/internal/domain/content"
	"github.com/persona/persona-api/internal/domain/moderation"
	"github.com/persona/persona-api/internal/domain/notification"
	"github.com/persona/persona-api/internal/domain/user"
	"github.com/persona/persona-api/internal/middleware"
	"github.com/persona/persona-api/internal/pkg/database"
	"github.com/persona/persona-api/internal/pkg/jwt"
	"github.com/persona/persona-api/internal/pkg/logger"
	pkgresponse "github.com/persona/persona-api/internal/pkg/response"
	"github.com/persona/persona-api/internal/pkg/session"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env, LogFile: cfg.LogFile})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Persona API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	cleanupJob := notification.NewCleanupJob(notification.NewRepository(db), cfg.NotificationRetentionDays)
	go cleanupJob.Start(ctx, cfg.NotificationCleanupInterval)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, db, rdb),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// newRouter wires repositories, services and handlers. rdb may be nil.
func newRouter(cfg *config.Config, db *sqlx.DB, rdb *redis.Client) http.Handler {
	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	contentRepo := content.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	adminRepo := admin.NewRepository(db)

	// ---------- Sessions ----------
	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	var revocations session.RevocationStore
	var realtime notification.RealtimePublisher
	if rdb != nil {
		revocations = session.NewRedisRevocationStore(rdb)
		realtime = notification.NewRedisPublisher(rdb)
	}
	sessions := session.NewProvider(jwtService, revocations)
	authMiddleware := middleware.Auth(sessions)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, sessions)
	notificationService := notification.NewService(notificationRepo, realtime)
	adminService := admin.NewService(adminRepo, userRepo)
	gate := admin.NewGate(admin.NewResolver(sessions, userRepo))
	processor := moderation.NewProcessor(contentRepo, notification.NewNotifier(notificationService), adminService)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	notificationHandler := notification.NewHandler(notificationService)
	adminHandler := admin.NewHandler(adminService, gate)
	moderationHandler := moderation.NewHandler(processor, gate)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.SecureHeaders(cfg.IsProduction()))
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RateLimit(sessions, cfg.AdminRateLimit, time.Minute))
			r.Use(middleware.Timeout(10 * time.Second))
			r.Mount("/content", moderationHandler.Routes())
			r.Mount("/", adminHandler.Routes())
		})
	})

	return r
}
