package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"reyan-luxe/internal/middleware"
	"reyan-luxe/internal/model"
	"reyan-luxe/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart and wishlist HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Cart dispatches /api/cart-items and /api/cart-items/{id}.
func (h *CartHandler) Cart(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required", h.logger)
		return
	}

	if id, ok := trailingUUID(r.URL.Path, "/api/cart-items"); ok {
		switch r.Method {
		case http.MethodPatch, http.MethodPut:
			h.updateQuantity(w, r, user, id)
		case http.MethodDelete:
			h.remove(w, r, user, id)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, user)
	case http.MethodPost:
		h.add(w, r, user)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *CartHandler) list(w http.ResponseWriter, r *http.Request, user *model.User) {
	items, err := h.service.ListCart(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if items == nil {
		items = []model.CartItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request, user *model.User) {
	var req model.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	item, err := h.service.AddToCart(r.Context(), user.ID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request, user *model.User, id uuid.UUID) {
	var req model.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.UpdateCartQuantity(r.Context(), user.ID, id, req.Quantity); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart item updated"})
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request, user *model.User, id uuid.UUID) {
	if err := h.service.RemoveFromCart(r.Context(), user.ID, id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Wishlist dispatches /api/wishlist and /api/wishlist/{id}.
func (h *CartHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required", h.logger)
		return
	}

	if id, ok := trailingUUID(r.URL.Path, "/api/wishlist"); ok {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
			return
		}

		if err := h.service.RemoveFromWishlist(r.Context(), user.ID, id); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, err := h.service.ListWishlist(r.Context(), user.ID)
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		if items == nil {
			items = []model.WishlistItem{}
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var req model.WishlistItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
			return
		}

		item, err := h.service.AddToWishlist(r.Context(), user.ID, &req)
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// trailingUUID extracts a uuid from paths shaped like prefix/{id}.
func trailingUUID(path, prefix string) (uuid.UUID, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSuffix(path, "/"), prefix+"/")
	if !ok || rest == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(rest)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
