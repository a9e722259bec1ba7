package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-auth-api/config"
	"github.com/target/mmk-auth-api/internal/adapters/hasher"
	"github.com/target/mmk-auth-api/internal/adapters/redisqueue"
	"github.com/target/mmk-auth-api/internal/adapters/taskrunner"
	"github.com/target/mmk-auth-api/internal/adapters/tokens"
	"github.com/target/mmk-auth-api/internal/data"
	"github.com/target/mmk-auth-api/internal/ports"
	"github.com/target/mmk-auth-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	DB            *sql.DB
	Users         *service.UserService
	Auth          *service.AuthService
	Authenticator *service.Authenticator

	// Task runtime; nil when no Redis client was supplied.
	Broker  *redisqueue.Broker
	Results *redisqueue.ResultStore
	Runner  *taskrunner.Runner
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient *redis.Client // optional
	Logger      *slog.Logger
}

// NewServices wires repositories, adapters and business services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("database is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	codec, err := tokens.NewJWTCodec(tokens.Options{
		Secret:    []byte(cfg.JWT.SecretKey),
		Algorithm: string(cfg.JWT.Algorithm),
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build token codec: %w", err)
	}

	userRepo := data.NewUserRepo(deps.DB)
	users := service.NewUserService(userRepo)
	container := ServiceContainer{
		DB:    deps.DB,
		Users: users,
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users:  userRepo,
			Hasher: newPasswordHasher(cfg.PasswordHash),
			Tokens: service.TokenIssuer{Codec: codec, TTL: cfg.JWT.AccessTokenTTL()},
		}),
		Authenticator: service.NewAuthenticator(users, codec),
	}

	if deps.RedisClient == nil {
		return container, nil
	}

	if err := buildTaskRuntime(&container, deps, logger); err != nil {
		return ServiceContainer{}, err
	}
	return container, nil
}

func newPasswordHasher(cfg config.PasswordHashConfig) *hasher.Argon2 {
	return hasher.New(hasher.Options{
		Params: hasher.Params{
			Time:      cfg.Time,
			MemoryKiB: cfg.MemoryKiB,
			Threads:   cfg.Threads,
			KeyLength: cfg.KeyLength,
			SaltBytes: cfg.SaltBytes,
		},
		Workers: cfg.Workers,
	})
}

func buildTaskRuntime(container *ServiceContainer, deps *ServiceDeps, logger *slog.Logger) error {
	cfg := deps.Config

	broker, err := redisqueue.NewBroker(deps.RedisClient, cfg.Redis.QueueName)
	if err != nil {
		return fmt.Errorf("build task broker: %w", err)
	}
	results := redisqueue.NewResultStore(deps.RedisClient, cfg.Redis.QueueName, cfg.Redis.ResultTTL)

	registry, err := data.BuildProgressRegistry(deps.DB, cfg.Progress.Entities)
	if err != nil {
		return fmt.Errorf("build progress registry: %w", err)
	}

	runner, err := taskrunner.NewRunner(taskrunner.RunnerOptions{
		Broker:      broker,
		Results:     results,
		Logger:      logger,
		Concurrency: cfg.Worker.Concurrency,
		PollTimeout: cfg.Worker.PollTimeout,
		TaskTimeout: cfg.Worker.TaskTimeout,
		Middlewares: []ports.TaskMiddleware{
			service.NewProgressMiddleware(service.ProgressMiddlewareOptions{
				Registry: registry,
				Logger:   logger,
			}),
		},
		CaptureErrors: cfg.Sentry.IsEnabled(),
	})
	if err != nil {
		return fmt.Errorf("build task runner: %w", err)
	}

	container.Broker = broker
	container.Results = results
	container.Runner = runner
	return nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// serviceStartupDeps groups dependencies for service startup.
type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

func startHTTPServerIfEnabled(deps *serviceStartupDeps) *http.Server {
	if deps == nil || deps.cfg == nil || !deps.enabledServices[config.ServiceModeHTTP] {
		return nil
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:   deps.cfg.Config,
		Services: deps.cfg.Services,
		Logger:   deps.logger,
	}, deps.errCh)
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				deps.logger.WarnContext(ctx, "dropping background service error", "service", descriptor.name, "error", errMsg)
			}
		}
	}()

	deps.logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)
	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))

	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}
		handles = append(handles, backgroundServiceHandle{mode: svc.mode, name: svc.name, done: done})
	}

	return handles
}

func newWorkerBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeWorker,
		name: "task worker",
		start: func(ctx context.Context) error {
			runner := deps.cfg.Services.Runner
			if runner == nil {
				return errors.New("task runner is not configured (redis client missing)")
			}
			return runner.Run(ctx)
		},
	}
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// It blocks until ctx is done, a shutdown signal is received or a service fails.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, errorChannelBufferSize(enabledServices))

	deps := &serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	}
	httpServer := startHTTPServerIfEnabled(deps)
	backgrounds := startBackgroundServices(deps, []backgroundService{newWorkerBackgroundService(deps)})

	return waitForShutdown(shutdownConfig{
		ctx:         serviceCtx,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  httpServer,
		logger:      logger,
		backgrounds: backgrounds,
	})
}

func errorChannelCapacity(enabled map[config.ServiceMode]bool) int {
	count := 0
	for _, mode := range config.ValidServiceModes() {
		if enabled[mode] {
			count++
		}
	}
	return count
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	return errorChannelCapacity(enabled) + 1
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal, context cancellation or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case <-cfg.ctx.Done():
		cfg.logger.Info("context done, shutting down services...")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop attempts to gracefully stop all services.
func gracefulStop(cfg shutdownConfig) error {
	if cfg.httpServer != nil {
		// The service context is already canceled; shutdown gets its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(cfg.ctx), shutdownWaitTimeout)
		defer cancel()

		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			return err
		}
	}

	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
