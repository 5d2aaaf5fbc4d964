package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/credential"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/history"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/market"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/portfolio"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/infra/gateway/bitpanda"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/infra/gateway/coingecko"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/transport/httpapi"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/transport/httpapi/handler"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/config"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Eurocoin API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// The API key lives in memory for the process lifetime only; it can be
	// seeded from the environment and overwritten at runtime.
	keys := credential.NewStore(cfg.BitpandaAPIKey)
	if keys.HasKey() {
		log.Info("Bitpanda API key loaded from environment")
	}

	// Upstream gateways
	bitpandaClient := bitpanda.NewClient(keys, log)
	bitpandaClient.SetBaseURL(cfg.BitpandaBaseURL)
	coingeckoClient := coingecko.NewClient(log)
	coingeckoClient.SetBaseURL(cfg.CoinGeckoBaseURL)

	// Caches and aggregation service
	snapshots := market.NewSnapshotCache(bitpandaClient, log)
	historyCache := history.NewCache(coingeckoClient, log)
	portfolioSvc := portfolio.NewService(keys, bitpandaClient, snapshots, log)
	log.Info("Aggregation services initialized")

	// HTTP router
	router := httpapi.NewRouter(httpapi.Config{
		Logger:           log,
		AllowedOrigins:   cfg.AllowedOrigins,
		PortfolioHandler: handler.NewPortfolioHandler(portfolioSvc),
		HistoryHandler:   handler.NewHistoryHandler(historyCache),
		APIKeyHandler:    handler.NewAPIKeyHandler(keys, portfolioSvc),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}
