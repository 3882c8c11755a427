package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"studymate-backend/config"
	"studymate-backend/conn"
	"studymate-backend/logger"
	"studymate-backend/login"
	"studymate-backend/middleware"
	"studymate-backend/migrations"
	"studymate-backend/openai"
	"studymate-backend/topics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "studymate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, dialect, err := conn.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	if err := migrations.Migrate(ctx, db, dialect); err != nil {
		return err
	}
	log.Info("database ready", "driver", dialect)

	issuer, err := login.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.TokenLifetime)
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}
	if cfg.OpenAI.APIKey == "" {
		log.Warn("OPENAI_API_KEY is empty; topic generation will fail")
	}
	ai := openai.NewClient(cfg.OpenAI, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg, log, db,
		login.NewHandler(login.NewRepository(db), issuer, log),
		topics.NewHandler(
			topics.NewService(topics.NewRepository(db), topics.NewGenerator(ai, log), log),
			cfg.GenerateTimeout, log,
		),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "env", cfg.Env, "model", ai.Model())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func newRouter(cfg config.Config, log *logger.Logger, db *sql.DB, auth *login.Handler, topicsHandler *topics.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	auth.RegisterRoutes(api)
	topicsHandler.RegisterRoutes(api, auth.RequireAuth())
	return r
}
