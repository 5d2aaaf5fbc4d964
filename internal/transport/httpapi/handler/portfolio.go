package handler

import (
	"net/http"
	"strconv"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/portfolio"
)

// PortfolioHandler exposes the aggregated portfolio views.
type PortfolioHandler struct {
	service *portfolio.Service
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(service *portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// GetTicker handles GET /api/v1/ticker
func (h *PortfolioHandler) GetTicker(w http.ResponseWriter, r *http.Request) {
	view := h.service.GetTicker(r.Context())
	if !view.Success() {
		respondError(w, http.StatusBadGateway, view.Error)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetWallets handles GET /api/v1/wallets
func (h *PortfolioHandler) GetWallets(w http.ResponseWriter, r *http.Request) {
	view := h.service.GetWallets(r.Context())
	if !view.Success() {
		respondJSON(w, viewErrorStatus(view.HasAPIKey), view)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetTrades handles GET /api/v1/trades?type=&cursor=&page_size=
func (h *PortfolioHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	q := portfolio.TradeQuery{
		Side:     r.URL.Query().Get("type"),
		Cursor:   r.URL.Query().Get("cursor"),
		PageSize: queryInt(r, "page_size"),
	}

	view := h.service.GetTrades(r.Context(), q)
	if !view.Success() {
		respondJSON(w, viewErrorStatus(view.HasAPIKey), view)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetTransactions handles GET /api/v1/transactions?category=&type=&status=&page_size=
func (h *PortfolioHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "all"
	}
	q := portfolio.TransactionQuery{
		Kind:     r.URL.Query().Get("type"),
		Status:   r.URL.Query().Get("status"),
		Cursor:   r.URL.Query().Get("cursor"),
		PageSize: queryInt(r, "page_size"),
	}

	view := h.service.GetTransactions(r.Context(), category, q)
	if !view.Success() {
		respondJSON(w, viewErrorStatus(view.HasAPIKey), view)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// viewErrorStatus maps a failed view to a status code: missing key reads as
// a client problem, anything else as an upstream one.
func viewErrorStatus(hasAPIKey bool) int {
	if !hasAPIKey {
		return http.StatusPreconditionRequired
	}
	return http.StatusBadGateway
}

func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
