package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"post-spot/backend/internal/api"
	"post-spot/backend/internal/content"
	"post-spot/backend/internal/engagement"
	"post-spot/backend/internal/graph"
	"post-spot/backend/internal/identity"
	"post-spot/backend/internal/session"
	"post-spot/backend/pkg/config"
	"post-spot/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...", zap.String("env", cfg.Env))

	// Initialize Neo4j driver
	ctx := context.Background()
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}

	// Initialize dependencies
	repo := graph.NewRepository(driver, graph.WithDatabase(cfg.Neo4jDatabase), graph.WithLogger(log.Named("graph")))
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			log.Warn("Failed to close Neo4j driver", zap.Error(err))
		}
	}()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to apply graph schema", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Identity:       identity.NewService(repo),
		Content:        content.NewService(repo),
		Engagement:     engagement.NewService(repo),
		Sessions:       session.NewManager(cfg.SessionSecret, cfg.SessionTTL),
		Health:         repo,
		Logger:         log.Named("http"),
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.IsProduction(),
	})

	srv := newHTTPServer(cfg.Port, router)

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

func newHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}
}
