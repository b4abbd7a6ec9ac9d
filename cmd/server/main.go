package main

import (
	"context"
	"errors"
	"io"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"lingo/backend/internal/config"
	"lingo/backend/internal/handler"
	transport "lingo/backend/internal/http"
	"lingo/backend/internal/logger"
	"lingo/backend/internal/network"
	"lingo/backend/internal/scheduler"
	"lingo/backend/internal/service"
	"lingo/backend/internal/service/translator"
	"lingo/backend/internal/telemetry"
)

// @title Lingo API
// @version 1.0
// @description Translation proxy routes for the Lingo widget.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, strings.ToLower(config.AppName), cfg.OTelEndpoint)
	if err != nil {
		logger.Warn("tracing disabled", "module", "main", "action", "init", "resource", "telemetry", "result", "failed", "error", err)
	}

	clients := network.NewClientFactory(network.StaticProxy(cfg.UpstreamProxy))
	provider, err := translator.NewProvider(ctx, providerConfig(cfg, clients))
	if err != nil {
		log.Fatalf("create provider: %v", err)
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}

	translateService := service.NewTranslateService(provider, cfg.UpstreamTimeout)
	healthService := service.NewHealthService(translateService)

	translateHandler := handler.NewTranslateHandler(translateService)
	healthHandler := handler.NewHealthHandler(healthService)

	router := transport.NewRouter(translateHandler, healthHandler, cfg.StaticDir)

	sched := scheduler.New(healthService, cfg.HealthInterval)
	sched.Start()

	logger.Info("server starting", "module", "main", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "provider", provider.Name())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "module", "main", "action", "stop", "resource", "http", "result", "ok")
		sched.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "module", "main", "action", "stop", "resource", "http", "result", "failed", "error", err)
		os.Exit(1)
	}
}

// providerConfig picks the upstream settings that belong to cfg.Provider.
func providerConfig(cfg config.Config, clients *network.ClientFactory) translator.Config {
	pc := translator.Config{
		Provider: cfg.Provider,
		Timeout:  cfg.UpstreamTimeout,
		Clients:  clients,
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", translator.ProviderLibreTranslate:
		pc.BaseURL = cfg.LibreTranslateURL
		pc.APIKey = cfg.LibreTranslateKey
	case translator.ProviderMyMemory:
		pc.BaseURL = cfg.MyMemoryURL
		pc.Email = cfg.MyMemoryEmail
	case translator.ProviderGoogle:
		pc.Credentials = cfg.GoogleCredentials
	default:
		pc.BaseURL = cfg.LLMBaseURL
		pc.APIKey = cfg.LLMAPIKey
		pc.Model = cfg.LLMModel
	}
	return pc
}
