// Package httpapi wires the aggregation services into an HTTP surface.
package httpapi

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/transport/httpapi/handler"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/transport/httpapi/middleware"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger           *logger.Logger
	AllowedOrigins   []string
	PortfolioHandler *handler.PortfolioHandler
	HistoryHandler   *handler.HistoryHandler
	APIKeyHandler    *handler.APIKeyHandler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	// Health check endpoint
	r.Get("/health", handler.GetHealth)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ticker", cfg.PortfolioHandler.GetTicker)
		r.Get("/wallets", cfg.PortfolioHandler.GetWallets)
		r.Get("/trades", cfg.PortfolioHandler.GetTrades)
		r.Get("/transactions", cfg.PortfolioHandler.GetTransactions)

		r.Get("/history/{symbol}", cfg.HistoryHandler.GetHistory)

		r.Get("/apikey", cfg.APIKeyHandler.GetKeyStatus)
		r.Post("/apikey", cfg.APIKeyHandler.SetKey)
		r.Post("/apikey/validate", cfg.APIKeyHandler.ValidateKey)
	})

	return r
}
