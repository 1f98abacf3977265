package handler

import (
	"net/http"
	"strconv"
	"strings"

	"reyan-luxe/internal/model"
	"reyan-luxe/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles catalog browsing HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Bracelets handles GET /api/bracelets and GET /api/bracelets/{id}.
func (h *CatalogHandler) Bracelets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if id, ok := trailingID(r.URL.Path, "/api/bracelets"); ok {
		bracelet, err := h.service.GetBracelet(r.Context(), id)
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, bracelet)
		return
	}

	bracelets, err := h.service.ListBracelets(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if bracelets == nil {
		bracelets = []model.Bracelet{}
	}
	writeJSON(w, http.StatusOK, bracelets)
}

// Chains handles GET /api/chains and GET /api/chains/{id}.
func (h *CatalogHandler) Chains(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if id, ok := trailingID(r.URL.Path, "/api/chains"); ok {
		chain, err := h.service.GetChain(r.Context(), id)
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, chain)
		return
	}

	chains, err := h.service.ListChains(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if chains == nil {
		chains = []model.Chain{}
	}
	writeJSON(w, http.StatusOK, chains)
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// trailingID extracts a numeric id from paths shaped like prefix/{id}.
func trailingID(path, prefix string) (int64, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSuffix(path, "/"), prefix+"/")
	if !ok || rest == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
