// Package main runs the game service HTTP server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/ecoplay/game-service/internal/app"
	"github.com/ecoplay/game-service/internal/app/httpapi"
	"github.com/ecoplay/game-service/internal/app/storage/postgres"
	"github.com/ecoplay/game-service/internal/auth"
	"github.com/ecoplay/game-service/internal/config"
	"github.com/ecoplay/game-service/internal/logging"
	"github.com/ecoplay/game-service/internal/metrics"
	"github.com/ecoplay/game-service/internal/middleware"
	"github.com/ecoplay/game-service/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.NewDefault("server").WithError(err).Fatal("invalid configuration")
	}

	log := logger.New("server", os.Stderr, cfg.LogLevel)
	reqLog := logging.NewLogger(log)

	stores, closeStores, err := buildStores(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialise storage")
	}
	defer closeStores()

	application, err := app.New(stores, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.WithError(err).Fatal("failed to start application")
	}

	m := metrics.New()

	var audit *httpapi.AuditLog
	if cfg.Audit.File != "" {
		sink, err := httpapi.NewFileAuditSink(cfg.Audit.File)
		if err != nil {
			log.WithError(err).Fatal("failed to open audit file")
		}
		audit = httpapi.NewAuditLog(1000, sink)
	} else {
		audit = httpapi.NewAuditLog(1000, nil)
	}

	router := httpapi.NewHandler(application, httpapi.Options{
		Metrics: m.Handler(),
		Audit:   audit,
	})

	skipPaths := []string{"/healthz", "/metrics"}
	verifier := buildVerifier(cfg, log)
	authMW := middleware.NewAuthMiddleware(verifier, reqLog, skipPaths)
	if cfg.IsDevelopment() {
		authMW.AllowDevBypass(auth.DevIdentity)
		log.Warn("dev auth bypass enabled; unauthenticated requests act as the dev participant")
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, reqLog)
	rateLimiter.StartCleanup(5 * time.Minute)

	router.Use(middleware.MetricsMiddleware("game-service", m))

	var handler http.Handler = router
	handler = authMW.Handler(handler)
	handler = rateLimiter.Handler(handler)
	handler = middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins).Handler(handler)
	handler = middleware.NewTracingMiddleware(reqLog).Handler(handler)
	handler = httpapi.WrapWithAudit(handler, audit)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("game service listening")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown error")
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("application stop error")
	}

	log.Info("stopped")
}

// buildStores selects the storage backend. A configured database DSN selects
// PostgreSQL (running migrations first); otherwise everything is in-memory.
func buildStores(cfg config.Config, log *logger.Logger) (app.Stores, func(), error) {
	if cfg.Database.DSN == "" {
		log.Info("no database configured, using in-memory storage")
		return app.Stores{}, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return app.Stores{}, nil, err
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return app.Stores{}, nil, err
	}
	if err := postgres.Migrate(pingCtx, db); err != nil {
		db.Close()
		return app.Stores{}, nil, err
	}

	log.Info("connected to postgres")
	store := postgres.New(db)
	stores := app.Stores{
		Games:    store,
		Matches:  store,
		Messages: store,
		Consents: store,
	}
	return stores, func() { db.Close() }, nil
}

func buildVerifier(cfg config.Config, log *logger.Logger) auth.Verifier {
	if cfg.Auth.JWTSecret != "" {
		return auth.NewJWTVerifier(cfg.Auth.JWTSecret)
	}
	// Load already rejects a missing secret outside development.
	log.Warn("no JWT secret configured; accepting all tokens as the dev participant")
	return &auth.StaticVerifier{Identity: auth.DevIdentity}
}
