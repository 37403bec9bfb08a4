package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/logger"
	"github.com/yukikurage/project-management-api/internal/router"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/storage"
	"github.com/yukikurage/project-management-api/internal/telemetry"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newLogger(cfg *config.Config) *zap.Logger {
	return logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}).With(zap.String("service", cfg.App.Name))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.App.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open stores", zap.Error(err))
		return err
	}

	images, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		_ = st.close(context.Background())
		return err
	}

	tokens := auth.NewTokenService(cfg.JWT)
	aiService := services.NewAIService(cfg.AI)
	if aiService == nil {
		log.Info("AI task drafting disabled: no OpenAI API key configured")
	}

	engine := router.New(router.Dependencies{
		Config:         cfg,
		Logger:         log,
		AuthService:    services.NewAuthService(st.users, tokens, st.revocations),
		ProjectService: services.NewProjectService(st.projects, images),
		TaskService:    services.NewTaskService(st.tasks, st.projects, images, aiService),
		Tracing:        tracer.Enabled(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server started", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case err := <-serveErr:
		runErr = fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		log.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	if err := st.close(shutdownCtx); err != nil {
		log.Error("Failed to close stores", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down telemetry", zap.Error(err))
	}

	log.Info("Server stopped")
	return runErr
}
