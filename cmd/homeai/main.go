package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/krestn/HomeAI/internal/agent"
	"github.com/krestn/HomeAI/internal/config"
	"github.com/krestn/HomeAI/internal/documents"
	"github.com/krestn/HomeAI/internal/memory"
	"github.com/krestn/HomeAI/internal/model"
	"github.com/krestn/HomeAI/internal/property"
	"github.com/krestn/HomeAI/internal/server"
	"github.com/krestn/HomeAI/internal/services"
	"github.com/krestn/HomeAI/internal/tools"
)

func main() {
	configPath := flag.String("config", "", "path to config file (TOML)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(*configPath, logger); err != nil {
		logger.Fatal("homeai exited", zap.Error(err))
	}
}

func run(configPath string, logger *zap.Logger) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Default()
	}

	propertyStore, err := property.Open(cfg.Paths.DatabasePath)
	if err != nil {
		return fmt.Errorf("open property store: %w", err)
	}
	defer propertyStore.Close()

	documentStore, err := documents.NewStore(cfg.Paths.DocumentsDir)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}

	taskStore := memory.NewTaskStore()
	sessions := memory.NewInMemorySession()

	registry := tools.NewHomeRegistry(tools.Deps{
		Valuer:    services.NewValuationClient(cfg.Valuation),
		Services:  services.NewPlacesClient(cfg.Places),
		Documents: documentStore,
		Tasks:     taskStore,
	})

	orchestrator := agent.New(
		agent.Config{MaxPropertyToolCalls: cfg.Agent.MaxPropertyToolCalls},
		model.NewClient(cfg.Provider),
		property.NewResolver(propertyStore),
		registry,
		taskStore,
		sessions,
		services.NewWeatherClient(cfg.Weather),
		logger.Named("agent"),
	)

	srv := server.New(cfg.Server, orchestrator, documentStore, logger.Named("server"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
