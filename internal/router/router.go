package router

import (
	"net/http"
	"strings"

	"reyan-luxe/internal/handler"
	"reyan-luxe/internal/middleware"
	"reyan-luxe/internal/repository"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	cartHandler *handler.CartHandler,
	accountHandler *handler.AccountHandler,
	users repository.UserRepository,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalog routes (read-only, no authentication required)
	mux.HandleFunc("/api/bracelets", catalogHandler.Bracelets)
	mux.HandleFunc("/api/bracelets/", catalogHandler.Bracelets)
	mux.HandleFunc("/api/chains", catalogHandler.Chains)
	mux.HandleFunc("/api/chains/", catalogHandler.Chains)
	mux.HandleFunc("/api/categories", catalogHandler.Categories)

	// Order routes: collection, detail, and the cancel/update_status actions
	// all dispatch through the order handler.
	mux.HandleFunc("/api/orders", orderHandler.Route)
	mux.HandleFunc("/api/orders/", orderHandler.Route)

	// Payment routes
	mux.HandleFunc("/api/payments/razorpay/create_order", paymentHandler.CreateOrder)
	mux.HandleFunc("/api/payments/razorpay/verify_payment", paymentHandler.VerifyPayment)
	mux.HandleFunc("/api/payments/razorpay/payment_failed", paymentHandler.PaymentFailed)
	mux.HandleFunc("/api/payments/razorpay/webhook", paymentHandler.Webhook)

	// Cart and wishlist routes
	mux.HandleFunc("/api/cart-items", cartHandler.Cart)
	mux.HandleFunc("/api/cart-items/", cartHandler.Cart)
	mux.HandleFunc("/api/wishlist", cartHandler.Wishlist)
	mux.HandleFunc("/api/wishlist/", cartHandler.Wishlist)

	// Account routes
	mux.HandleFunc("/api/send-otp", accountHandler.SendOTP)
	mux.HandleFunc("/api/verify-otp", accountHandler.VerifyOTP)
	mux.HandleFunc("/api/me", accountHandler.Me)

	// Apply middleware in order: Recovery -> Logging -> CORS -> TokenAuth
	var h http.Handler = mux
	h = middleware.TokenAuth(users, isPublic, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

// isPublic reports whether a route is reachable without a bearer token. The
// webhook authenticates with its own signature header, and catalog browsing
// and OTP issuance happen before a session exists.
func isPublic(r *http.Request) bool {
	path := strings.TrimSuffix(r.URL.Path, "/")

	switch path {
	case "/health",
		"/api/categories",
		"/api/send-otp",
		"/api/verify-otp",
		"/api/payments/razorpay/webhook":
		return true
	}

	if r.Method == http.MethodGet &&
		(path == "/api/bracelets" || strings.HasPrefix(path, "/api/bracelets/") ||
			path == "/api/chains" || strings.HasPrefix(path, "/api/chains/")) {
		return true
	}

	// CORS preflight never carries credentials.
	return r.Method == http.MethodOptions
}
