package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/scheme-advisor/internal/adapters/mcp"
	"github.com/kirillkom/scheme-advisor/internal/bootstrap"
	"github.com/kirillkom/scheme-advisor/internal/config"
	"github.com/kirillkom/scheme-advisor/internal/observability/logging"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	// stdout carries the MCP stream.
	slog.SetDefault(logging.NewJSONLogger(os.Stderr, "scheme-advisor-mcp", cfg.LogLevel))

	advisor, err := bootstrap.NewAdvisor(context.Background(), cfg, bootstrap.Observers{})
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}

	tools := mcpadapter.NewTools(advisor.DistrictsUC, advisor.ProfilesUC)
	if err := server.ServeStdio(mcpadapter.NewServer(version, tools)); err != nil {
		slog.Error("mcp_server_stopped", "error", err)
		os.Exit(1)
	}
}
