package model

import "time"

// CategoryGroup splits the category tree between the two product families.
type CategoryGroup string

const (
	CategoryGroupBracelet CategoryGroup = "bracelet"
	CategoryGroupChain    CategoryGroup = "chain"
)

// Category is a node in the catalog navigation tree.
type Category struct {
	ID         int64         `json:"id" db:"id"`
	Name       string        `json:"name" db:"name"`
	Slug       string        `json:"slug" db:"slug"`
	ParentID   *int64        `json:"parent,omitempty" db:"parent_id"`
	Group      CategoryGroup `json:"group" db:"group_name"`
	IsActive   bool          `json:"isActive" db:"is_active"`
	Position   int           `json:"position" db:"position"`
	ShowInMenu bool          `json:"showInMenu" db:"show_in_menu"`
}

// Bracelet is a catalog product in the bracelet family. Price is in minor
// currency units.
type Bracelet struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Description       string    `json:"description" db:"description"`
	Price             int64     `json:"price" db:"price"`
	ImageURL          *string   `json:"imageUrl,omitempty" db:"image_url"`
	Badge             string    `json:"badge" db:"badge"`
	IsSignaturePiece  bool      `json:"isSignaturePiece" db:"is_signature_piece"`
	SignatureCategory *string   `json:"signatureCategory,omitempty" db:"signature_category"`
	CategoryID        *int64    `json:"categoryId,omitempty" db:"category_id"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// Chain is a catalog product in the chain family.
type Chain struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	CategoryID  *int64    `json:"categoryId,omitempty" db:"category_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductSnapshot is the price/name view a line item is built from, resolved
// against whichever catalog table matches the product type.
type ProductSnapshot struct {
	ProductType ProductType
	ProductID   string
	Name        string
	Price       int64
}
