package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/history"
)

// HistoryHandler exposes historical price series.
type HistoryHandler struct {
	cache *history.Cache
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(cache *history.Cache) *HistoryHandler {
	return &HistoryHandler{cache: cache}
}

// GetHistory handles GET /api/v1/history/{symbol}?days=&currency=
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	days := queryInt(r, "days")
	if days <= 0 {
		days = 7
	}
	currency := r.URL.Query().Get("currency")

	view := h.cache.PriceHistory(r.Context(), symbol, days, currency)
	if !view.Success() {
		status := http.StatusBadGateway
		if strings.Contains(view.Error, "not supported") {
			status = http.StatusNotFound
		}
		respondJSON(w, status, view)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
