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

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), user, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	orders, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request, orderID uuid.UUID) {
	user := middleware.CurrentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), user.ID, orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Cancel handles POST /api/orders/{id}/cancel_order requests.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request, orderID uuid.UUID) {
	user := middleware.CurrentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	order, err := h.service.Cancel(r.Context(), user.ID, orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order cancelled successfully",
		"status":  order.Status,
	})
}

// UpdateStatus handles POST /api/orders/{id}/update_status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, orderID uuid.UUID) {
	user := middleware.CurrentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var req model.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), user.ID, orderID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated",
		"status":  order.Status,
	})
}

// Route dispatches /api/orders requests by method and path shape.
func (h *OrderHandler) Route(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	if path == "/api/orders" {
		switch r.Method {
		case http.MethodPost:
			h.Create(w, r)
		case http.MethodGet:
			h.List(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		}
		return
	}

	rest, ok := strings.CutPrefix(path, "/api/orders/")
	if !ok || rest == "" {
		writeError(w, http.StatusNotFound, "not found", h.logger)
		return
	}

	idPart, action, _ := strings.Cut(rest, "/")
	orderID, err := uuid.Parse(idPart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.GetByID(w, r, orderID)
	case action == "cancel_order" && r.Method == http.MethodPost:
		h.Cancel(w, r, orderID)
	case action == "update_status" && r.Method == http.MethodPost:
		h.UpdateStatus(w, r, orderID)
	default:
		writeError(w, http.StatusNotFound, "not found", h.logger)
	}
}
