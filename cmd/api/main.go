package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/kirillkom/scheme-advisor/internal/adapters/http"
	"github.com/kirillkom/scheme-advisor/internal/bootstrap"
	"github.com/kirillkom/scheme-advisor/internal/config"
	"github.com/kirillkom/scheme-advisor/internal/observability/logging"
)

const serviceName = "scheme-advisor-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logging.NewJSONLogger(os.Stdout, serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, serviceName)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	go func() {
		if err := app.RunCensusSubscriber(ctx); err != nil {
			slog.Error("census_subscriber_stopped", "error", err)
		}
	}()

	handler, err := httpadapter.NewRouter(cfg, httpadapter.Dependencies{
		Districts: app.DistrictsUC,
		Profiles:  app.ProfilesUC,
		Accounts:  app.AccountsUC,
		Census:    app.CensusUC,
		Status:    app.Census,
		Metrics:   app.Metrics,
	}).Handler()
	if err != nil {
		slog.Error("router_init_failed", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "addr", server.Addr, "districts_loaded", app.Census.Len())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api_server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_failed", "error", err)
	}
}
