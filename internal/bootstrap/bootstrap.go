package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/scheme-advisor/internal/config"
	"github.com/kirillkom/scheme-advisor/internal/core/ports"
	"github.com/kirillkom/scheme-advisor/internal/core/usecase"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/census"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/postal"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/queue/nats"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/resilience"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/security"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/scheme-advisor/internal/observability/metrics"
)

// Advisor holds the recommendation engines and the census table they read.
// It is enough for the MCP binary, which has no accounts or admin surface.
type Advisor struct {
	Census      *census.Store
	Storage     *localfs.Storage
	Parser      *census.Parser
	DistrictsUC ports.DistrictAdvisor
	ProfilesUC  ports.ProfileAdvisor
}

// Observers are optional metric sinks; nil fields disable recording.
type Observers struct {
	Census  census.ReloadObserver
	Postal  postal.LookupObserver
	Breaker resilience.StateObserver
}

func NewAdvisor(ctx context.Context, cfg config.Config, obs Observers) (*Advisor, error) {
	storage, err := localfs.New(cfg.CensusStoragePath)
	if err != nil {
		return nil, fmt.Errorf("init census storage: %w", err)
	}

	parser := census.NewParser(cfg.CensusSheet)
	store := census.NewStore(storage, cfg.CensusWorkbook, parser, obs.Census)
	if _, err := store.Reload(ctx); err != nil {
		// Start anyway so an operator can upload a workbook.
		slog.Warn("census_initial_load_failed", "workbook", cfg.CensusWorkbook, "error", err)
	}

	timeout := time.Duration(cfg.PostalTimeoutSeconds) * time.Second
	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    1,
		BreakerEnabled:      cfg.PostalBreakerEnabled,
		BreakerMinRequests:  uint32(max(cfg.PostalBreakerMinRequests, 0)),
		BreakerFailureRatio: cfg.PostalBreakerFailureRatio,
		BreakerOpenTimeout:  time.Duration(cfg.PostalBreakerOpenTimeoutSeconds) * time.Second,
	}, obs.Breaker)
	locator := postal.New(cfg.PostalAPIURL, postal.Options{
		Timeout:  timeout,
		CacheTTL: time.Duration(cfg.PostalCacheTTLMinutes) * time.Minute,
		Executor: executor,
		Observer: obs.Postal,
	})

	return &Advisor{
		Census:      store,
		Storage:     storage,
		Parser:      parser,
		DistrictsUC: usecase.NewDistrictUseCase(store),
		ProfilesUC:  usecase.NewProfileUseCase(locator, timeout),
	}, nil
}

type App struct {
	Config config.Config
	*Advisor

	Metrics    *metrics.HTTPServerMetrics
	AccountsUC ports.AccountService
	CensusUC   ports.CensusAdmin

	bus     *nats.ReloadBus
	closeFn func()
}

func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	httpMetrics := metrics.NewHTTPServerMetrics(service)
	postalMetrics := metrics.NewPostalMetrics(service, httpMetrics.Registerer())

	advisor, err := NewAdvisor(ctx, cfg, Observers{
		Census:  metrics.NewCensusMetrics(service, httpMetrics.Registerer()),
		Postal:  postalMetrics,
		Breaker: postalMetrics.ObserveBreakerState,
	})
	if err != nil {
		return nil, err
	}

	db, err := postgres.OpenDB(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	accounts := postgres.NewAccountRepository(db)
	if err := accounts.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	var bus *nats.ReloadBus
	// Keep the interface nil, not a typed nil pointer, when NATS is off.
	var reloadBus ports.ReloadBus
	if cfg.NATSURL != "" {
		bus, err = nats.New(cfg.NATSURL, cfg.NATSCensusSubject, nats.Options{
			ResilienceExecutor: resilience.NewExecutor(reloadBusResilience(cfg), postalMetrics.ObserveBreakerState),
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init census reload bus: %w", err)
		}
		reloadBus = bus
	}

	return &App{
		Config:  cfg,
		Advisor: advisor,
		Metrics: httpMetrics,

		AccountsUC: usecase.NewAccountUseCase(accounts, security.NewBcryptHasher(cfg.BcryptCost)),
		CensusUC:   usecase.NewCensusUseCase(advisor.Storage, cfg.CensusWorkbook, advisor.Parser, advisor.Census, reloadBus),

		bus: bus,

		closeFn: func() {
			if bus != nil {
				bus.Close()
			}
			_ = db.Close()
		},
	}, nil
}

// RunCensusSubscriber reloads the census table whenever any replica publishes
// a reload. It returns immediately when NATS is not configured.
func (a *App) RunCensusSubscriber(ctx context.Context) error {
	if a.bus == nil {
		return nil
	}
	return a.bus.SubscribeCensusReload(ctx, func(ctx context.Context) error {
		_, err := a.Census.Reload(ctx)
		return err
	})
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// reloadBusResilience retries broker connectivity errors with exponential
// backoff before the publish is reported as temporary.
func reloadBusResilience(cfg config.Config) resilience.Config {
	backoff := time.Duration(cfg.NATSPublishBackoffMS) * time.Millisecond
	return resilience.Config{
		RetryMaxAttempts:    cfg.NATSPublishMaxAttempts,
		RetryInitialBackoff: backoff,
		RetryMaxBackoff:     4 * backoff,
		RetryMultiplier:     2.0,
		BreakerEnabled:      true,
	}
}
