package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/chriscconte/cycling-coach/internal/config"
	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/infra/postgres"
	"github.com/chriscconte/cycling-coach/internal/infra/providers"
	"github.com/chriscconte/cycling-coach/internal/infra/repository"
	"github.com/chriscconte/cycling-coach/internal/infra/runrecorder"
	"github.com/chriscconte/cycling-coach/internal/infra/taskqueue"
	"github.com/chriscconte/cycling-coach/internal/observability"
	"github.com/chriscconte/cycling-coach/internal/observability/metrics"
	"github.com/chriscconte/cycling-coach/internal/service/alertsync"
	"github.com/chriscconte/cycling-coach/internal/service/conflict"
	"github.com/chriscconte/cycling-coach/internal/service/notify"
	"github.com/chriscconte/cycling-coach/internal/service/orchestrator"
	"github.com/chriscconte/cycling-coach/internal/service/reconcile"
	"github.com/chriscconte/cycling-coach/internal/service/training"
)

// app holds the wired dependencies shared by serve and run.
type app struct {
	cfg         *config.Config
	obs         *observability.Resources
	redis       *redis.Client
	pool        *pgxpool.Pool
	httpMetrics *metrics.HTTPMetrics

	orchestrator *orchestrator.Service
	training     *training.Service

	closers []func() error
}

func newApp(ctx context.Context, validate func(*config.Config) error) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation error: %w", err)
	}

	a := &app{cfg: cfg}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	a.obs = obs
	slog.SetDefault(obs.Logger())

	if err := a.wire(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context) error {
	cfg := a.cfg

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP metrics: %w", err)
	}
	a.httpMetrics = httpMetrics

	coachMetrics, err := metrics.NewCoachMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize coach metrics: %w", err)
	}

	if err := a.connectRedis(ctx); err != nil {
		return err
	}
	if err := a.connectPostgres(ctx); err != nil {
		return err
	}

	recorder, err := runrecorder.NewRecorder(ctx, runrecorder.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize run result recorder: %w", err)
	}
	a.closers = append(a.closers, recorder.Close)

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize task queue: %w", err)
	}
	if cleanup != nil {
		a.closers = append(a.closers, cleanup)
	}

	dispatcher, err := a.notificationDispatcher(taskQueue)
	if err != nil {
		return err
	}

	sessions := postgres.NewTrainingRepository(a.pool)
	alerts := postgres.NewAlertRepository(a.pool)
	users := postgres.NewUserRepository(a.pool)

	timeout := cfg.Orchestrator.ProviderTimeout
	calendar := providers.NewCalendarBridgeClient(cfg.Providers.CalendarBridgeURL, timeout)

	deps := orchestrator.Dependencies{
		Users:    users,
		Sessions: sessions,
		Alerts:   alerts,
		Platform: providers.NewIntervalsClient(cfg.Providers.IntervalsBaseURL, repository.NewSecretStore(a.redis), timeout),
		Lock:     repository.NewRunLock(a.redis),
		Recorder: recorder,
	}
	if cfg.Providers.CalendarBridgeURL != "" {
		deps.Calendar = calendar
	} else {
		slog.Warn("CALENDAR_BRIDGE_URL not set, conflict detection disabled")
	}
	if cfg.Providers.HealthBridgeURL != "" {
		deps.Workouts = providers.NewHealthBridgeClient(cfg.Providers.HealthBridgeURL, timeout)
	} else {
		slog.Warn("HEALTH_BRIDGE_URL not set, health store workouts disabled")
	}
	if taskQueue != nil {
		deps.Scheduler = taskQueue
	}

	a.orchestrator = orchestrator.NewService(
		deps,
		orchestrator.Config{
			CheckTrainingCadence:   cfg.Orchestrator.CheckTrainingCadence,
			DetectConflictsCadence: cfg.Orchestrator.DetectConflictsCadence,
			Concurrency:            cfg.Orchestrator.Concurrency,
			RunBudget:              cfg.Orchestrator.RunBudget,
			ProviderTimeout:        cfg.Orchestrator.ProviderTimeout,
			HistoryWindow:          cfg.Coach.HistoryWindow,
			Lookahead:              cfg.Coach.ConflictLookahead,
			DefaultLocation:        cfg.DefaultLocation,
		},
		reconcile.NewReconciler(reconcile.Policy{MatchWindow: cfg.Coach.MatchWindow}),
		conflict.NewDetector(conflict.Config{Lookahead: cfg.Coach.ConflictLookahead}),
		alertsync.NewSynchronizer(),
		notify.NewScheduler(notify.WeeklyReviewConfig{
			Weekday: cfg.Coach.WeeklyReviewWeekday,
			Hour:    cfg.Coach.WeeklyReviewHour,
		}),
		notify.NewEmitter(dispatcher, repository.NewNotificationLedger(a.redis), coachMetrics),
		orchestrator.WithMetrics(coachMetrics),
	)

	a.training = training.NewService(sessions, alerts, users, users, calendar,
		training.WithDefaultLocation(cfg.DefaultLocation),
	)

	return nil
}

func (a *app) connectRedis(ctx context.Context) error {
	a.redis = redis.NewClient(a.cfg.Redis.Options())
	a.closers = append(a.closers, a.redis.Close)

	if err := redisotel.InstrumentTracing(a.redis); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return err
	}

	if err := redisotel.InstrumentMetrics(a.redis); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return err
	}

	if err := a.redis.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return err
	}

	slog.Info("redis connected",
		slog.String("addr", a.cfg.Redis.Addr),
	)
	return nil
}

func (a *app) connectPostgres(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(a.cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	poolCfg.MaxConns = int32(a.cfg.Database.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to create postgres pool: %w", err)
	}
	a.pool = pool
	a.closers = append(a.closers, func() error {
		pool.Close()
		return nil
	})

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect postgres",
			slog.String("event", "postgres.connect.fail"),
			slog.String("error", err.Error()),
		)
		return err
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate postgres: %w", err)
	}

	slog.Info("postgres connected",
		slog.String("host", poolCfg.ConnConfig.Host),
		slog.String("database", poolCfg.ConnConfig.Database),
	)
	return nil
}

func (a *app) notificationDispatcher(taskQueue taskqueue.TaskQueue) (domain.NotificationDispatcher, error) {
	switch a.cfg.Dispatcher.Kind {
	case config.DispatcherKafka:
		kafka := taskqueue.NewKafkaDispatcher(a.cfg.Dispatcher.KafkaBrokers, a.cfg.Dispatcher.NotificationTopic)
		a.closers = append(a.closers, kafka.Close)
		slog.Info("notification dispatcher initialized",
			slog.String("type", "kafka"),
			slog.String("topic", a.cfg.Dispatcher.NotificationTopic),
		)
		return kafka, nil
	case config.DispatcherTasks:
		if taskQueue == nil {
			return nil, nil
		}
		return taskQueue, nil
	default:
		return nil, config.ErrUnknownDispatcher
	}
}

// Close releases dependencies in reverse order and flushes observability last.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("failed to close dependency", slog.String("error", err.Error()))
		}
	}
	a.closers = nil

	if a.obs == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.obs.Shutdown(shutdownCtx); err != nil {
		slog.Warn("observability shutdown error", slog.String("error", err.Error()))
	}
}
