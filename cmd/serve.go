package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/chriscconte/cycling-coach/internal/auth"
	"github.com/chriscconte/cycling-coach/internal/config"
	"github.com/chriscconte/cycling-coach/internal/handler"
	"github.com/chriscconte/cycling-coach/internal/health"
	"github.com/chriscconte/cycling-coach/internal/observability/logging"
	"github.com/chriscconte/cycling-coach/internal/observability/middleware"
)

const jobHeader = "X-CloudTasks-TaskName"

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the job endpoints, user API and health checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := newApp(ctx, config.ValidateForServe)
	if err != nil {
		return err
	}
	defer a.Close()

	r := newRouter(a)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", a.cfg.Port),
			slog.Duration("check_training_cadence", a.cfg.Orchestrator.CheckTrainingCadence),
			slog.Duration("detect_conflicts_cadence", a.cfg.Orchestrator.DetectConflictsCadence),
			slog.Int("concurrency", a.cfg.Orchestrator.Concurrency),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		// a job run in flight keeps its full budget to finish
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Orchestrator.RunBudget+10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return err
		}

		slog.Info("server exited properly")
		return nil

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return err
	}
}

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     logging.Module("coach"),
		Worker:     true,
		TracerName: "github.com/chriscconte/cycling-coach/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if job := c.Param("job"); job != "" {
				return job
			}
			if taskName := c.Request.Header.Get(jobHeader); taskName != "" {
				return taskName
			}
			return c.Request.URL.Path
		},
		HTTPMetrics: a.httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(a.redis, a.pool, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	r.Any(grpcHealthPath+"*method", gin.WrapH(grpcHealthHandler))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jobHandler := handler.NewJobHandler(a.orchestrator)
	meHandler := handler.NewMeHandler(a.training)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/jobs/:job", jobHandler.HandleRun)
		meHandler.Register(v1.Group("/me", auth.Gin(auth.Config{
			Secret: a.cfg.Auth.Secret,
			Issuer: a.cfg.Auth.Issuer,
		})))
	}

	return r
}
