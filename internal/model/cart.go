package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a user-keyed cart line. Name and price are snapshots taken when
// the item was added.
type CartItem struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      int64       `json:"-" db:"user_id"`
	ProductType ProductType `json:"productType" db:"product_type"`
	ProductID   string      `json:"productId" db:"product_id"`
	Name        string      `json:"name" db:"name"`
	Price       int64       `json:"price" db:"price"`
	Quantity    int         `json:"quantity" db:"quantity"`
	ImageURL    *string     `json:"imageUrl,omitempty" db:"image_url"`
}

// CartItemRequest represents the request payload for adding or updating a
// cart line. Name and Price are only read for customized products.
type CartItemRequest struct {
	ProductType ProductType `json:"productType"`
	ProductID   string      `json:"productId"`
	Quantity    int         `json:"quantity"`
	Name        string      `json:"name,omitempty"`
	Price       int64       `json:"price,omitempty"`
}

// WishlistItem is a user-keyed saved product. A user can save a product at
// most once.
type WishlistItem struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      int64       `json:"-" db:"user_id"`
	ProductType ProductType `json:"productType" db:"product_type"`
	ProductID   string      `json:"productId" db:"product_id"`
	Name        string      `json:"name" db:"name"`
	Price       int64       `json:"price" db:"price"`
	ImageURL    *string     `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}

// WishlistItemRequest represents the request payload for saving a product.
// Name and Price are only read for customized products.
type WishlistItemRequest struct {
	ProductType ProductType `json:"productType"`
	ProductID   string      `json:"productId"`
	Name        string      `json:"name,omitempty"`
	Price       int64       `json:"price,omitempty"`
}
