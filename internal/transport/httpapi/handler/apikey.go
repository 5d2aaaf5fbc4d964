package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/credential"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/portfolio"
)

// APIKeyHandler manages the Bitpanda API key for this process.
type APIKeyHandler struct {
	keys    *credential.Store
	service *portfolio.Service
}

// NewAPIKeyHandler creates a new API key handler
func NewAPIKeyHandler(keys *credential.Store, service *portfolio.Service) *APIKeyHandler {
	return &APIKeyHandler{keys: keys, service: service}
}

type setKeyRequest struct {
	APIKey string `json:"api_key"`
}

type keyStatusResponse struct {
	HasAPIKey bool `json:"has_api_key"`
}

type keyValidationResponse struct {
	HasAPIKey bool `json:"has_api_key"`
	Valid     bool `json:"valid"`
}

// SetKey handles POST /api/v1/apikey. The key is overwritten
// unconditionally; validity is checked separately.
func (h *APIKeyHandler) SetKey(w http.ResponseWriter, r *http.Request) {
	var req setKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.keys.SetKey(req.APIKey)
	respondJSON(w, http.StatusOK, keyStatusResponse{HasAPIKey: h.keys.HasKey()})
}

// GetKeyStatus handles GET /api/v1/apikey
func (h *APIKeyHandler) GetKeyStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, keyStatusResponse{HasAPIKey: h.keys.HasKey()})
}

// ValidateKey handles POST /api/v1/apikey/validate
func (h *APIKeyHandler) ValidateKey(w http.ResponseWriter, r *http.Request) {
	valid := h.service.ValidateKey(r.Context())
	respondJSON(w, http.StatusOK, keyValidationResponse{
		HasAPIKey: h.keys.HasKey(),
		Valid:     valid,
	})
}
