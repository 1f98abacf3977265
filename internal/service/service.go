package service

import (
	"context"

	"reyan-luxe/internal/model"

	"github.com/google/uuid"
)

// OrderService defines operations for order management.
type OrderService interface {
	// Create places a new order for the user in pending/pending state.
	Create(ctx context.Context, user *model.User, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order scoped to the owning user.
	GetByID(ctx context.Context, userID int64, id uuid.UUID) (*model.OrderResponse, error)

	// List returns the user's orders, newest first.
	List(ctx context.Context, userID int64) ([]model.Order, error)

	// Cancel cancels an order; allowed only from pending or confirmed.
	Cancel(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error)

	// UpdateStatus moves an order to a new fulfilment status and notifies the
	// customer. Terminal states reject every target status.
	UpdateStatus(ctx context.Context, userID int64, id uuid.UUID, req *model.UpdateStatusRequest) (*model.Order, error)
}

// PaymentService owns the payment reconciliation flow between the local order
// state and the gateway.
type PaymentService interface {
	// CreateGatewayOrder creates (or reuses) the gateway-side order for a
	// local order and returns the checkout parameters.
	CreateGatewayOrder(ctx context.Context, user *model.User, orderID uuid.UUID) (*model.CreateGatewayOrderResponse, error)

	// VerifyPayment reconciles a client-side payment confirmation. A valid
	// signature confirms the order; an invalid one marks the payment failed
	// and returns model.ErrSignatureInvalid.
	VerifyPayment(ctx context.Context, user *model.User, req *model.VerifyPaymentRequest) (*model.Order, error)

	// RecordFailure stores a client-reported payment failure.
	RecordFailure(ctx context.Context, userID int64, req *model.PaymentFailedRequest) error

	// HandleWebhook reconciles an asynchronous gateway notification. The raw
	// body and signature header come straight off the wire; unknown events
	// and unresolvable orders are no-ops so the gateway stops redelivering.
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

// CatalogService defines read operations over the product catalog.
type CatalogService interface {
	ListBracelets(ctx context.Context, categorySlug string) ([]model.Bracelet, error)
	GetBracelet(ctx context.Context, id int64) (*model.Bracelet, error)
	ListChains(ctx context.Context, categorySlug string) ([]model.Chain, error)
	GetChain(ctx context.Context, id int64) (*model.Chain, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// CartService defines cart and wishlist operations, all scoped to a user.
type CartService interface {
	ListCart(ctx context.Context, userID int64) ([]model.CartItem, error)
	AddToCart(ctx context.Context, userID int64, req *model.CartItemRequest) (*model.CartItem, error)
	UpdateCartQuantity(ctx context.Context, userID int64, id uuid.UUID, quantity int) error
	RemoveFromCart(ctx context.Context, userID int64, id uuid.UUID) error

	ListWishlist(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	AddToWishlist(ctx context.Context, userID int64, req *model.WishlistItemRequest) (*model.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID int64, id uuid.UUID) error
}

// AccountService defines account verification operations.
type AccountService interface {
	// SendOTP generates and delivers a one-time code to the user with the
	// given email.
	SendOTP(ctx context.Context, email string) error

	// VerifyOTP checks the code for the user; codes expire after five minutes.
	VerifyOTP(ctx context.Context, email, code string) error
}
