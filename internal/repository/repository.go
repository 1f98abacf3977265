package repository

import (
	"context"

	"reyan-luxe/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	// Returns model.ErrDuplicateOrderNumber when the order number collides.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByIDForUser retrieves an order with its items, scoped to the owning
	// user. Absent orders and orders owned by someone else are both (nil, nil, nil).
	GetByIDForUser(ctx context.Context, id uuid.UUID, userID int64) (*model.Order, []model.OrderItem, error)

	// GetByID retrieves an order without ownership scoping. Used only by the
	// webhook path, where the gateway signature is the authorisation.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetItems retrieves the items of an order.
	GetItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)

	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// UpdateOrder runs fn against a row-locked snapshot of the order and
	// persists the mutated status fields in the same transaction. This is the
	// single-writer discipline for all lifecycle transitions: concurrent
	// reconciliation calls for one order serialize on the row lock. fn
	// returning an error aborts without writing. Returns (nil, nil, nil-order
	// error path) via model.ErrOrderNotFound when the row is absent.
	UpdateOrder(ctx context.Context, id uuid.UUID, fn func(*model.Order) error) (*model.Order, error)
}

// ProductRepository defines the interface for catalog data access operations.
type ProductRepository interface {
	// ListBracelets retrieves bracelets, optionally filtered by category slug.
	ListBracelets(ctx context.Context, categorySlug string) ([]model.Bracelet, error)

	// GetBracelet retrieves a single bracelet by id.
	GetBracelet(ctx context.Context, id int64) (*model.Bracelet, error)

	// ListChains retrieves chains, optionally filtered by category slug.
	ListChains(ctx context.Context, categorySlug string) ([]model.Chain, error)

	// GetChain retrieves a single chain by id.
	GetChain(ctx context.Context, id int64) (*model.Chain, error)

	// ListCategories retrieves active categories ordered by position.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// ResolveProduct looks up the price/name snapshot for a (type, id) pair
	// against the matching catalog table.
	ResolveProduct(ctx context.Context, productType model.ProductType, productID string) (*model.ProductSnapshot, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, id uuid.UUID, userID int64, quantity int) (bool, error)
	Delete(ctx context.Context, id uuid.UUID, userID int64) (bool, error)
	DeleteAllForUser(ctx context.Context, userID int64) error
}

// WishlistRepository defines the interface for wishlist data access operations.
type WishlistRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error)

	// Create inserts the item unless the user already saved that product; the
	// (user, product) uniqueness constraint makes the insert race-safe.
	// Returns the existing item when present.
	Create(ctx context.Context, item *model.WishlistItem) (*model.WishlistItem, error)

	Delete(ctx context.Context, id uuid.UUID, userID int64) (bool, error)
}

// UserRepository defines the interface for user and OTP data access.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByToken resolves an opaque auth token to a user. Token issuance lives
	// outside this backend.
	GetByToken(ctx context.Context, token string) (*model.User, error)

	// UpsertOTP replaces the user's active OTP.
	UpsertOTP(ctx context.Context, userID int64, code string) error

	// GetOTP retrieves the user's OTP matching code, or nil when none matches.
	GetOTP(ctx context.Context, userID int64, code string) (*model.OTP, error)

	// MarkOTPVerified flags the OTP as verified.
	MarkOTPVerified(ctx context.Context, id uuid.UUID) error
}
