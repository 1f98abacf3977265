package service

import (
	"context"
	"fmt"
	"time"

	"reyan-luxe/internal/model"
	"reyan-luxe/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo     repository.CartRepository
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) ListCart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return items, nil
}

// AddToCart resolves the product against the catalog and stores a snapshot line.
func (s *cartService) AddToCart(ctx context.Context, userID int64, req *model.CartItemRequest) (*model.CartItem, error) {
	if req == nil || req.ProductID == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "product ID is required")
	}
	if !model.ValidProductType(req.ProductType) {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "invalid product type")
	}
	if req.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	snapshot, err := s.resolveSnapshot(ctx, req.ProductType, req.ProductID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	item := &model.CartItem{
		ID:          uuid.New(),
		UserID:      userID,
		ProductType: req.ProductType,
		ProductID:   req.ProductID,
		Name:        snapshot.Name,
		Price:       snapshot.Price,
		Quantity:    req.Quantity,
	}

	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Str("product_id", req.ProductID).
		Msg("cart item added")

	return item, nil
}

func (s *cartService) UpdateCartQuantity(ctx context.Context, userID int64, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	found, err := s.cartRepo.UpdateQuantity(ctx, id, userID, quantity)
	if err != nil {
		return err
	}
	if !found {
		return model.NewDomainError(model.ErrCodeProductNotFound, "cart item not found")
	}
	return nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID int64, id uuid.UUID) error {
	found, err := s.cartRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !found {
		return model.NewDomainError(model.ErrCodeProductNotFound, "cart item not found")
	}
	return nil
}

func (s *cartService) ListWishlist(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return items, nil
}

// AddToWishlist saves a product. Saving an already-saved product returns the
// existing entry rather than an error.
func (s *cartService) AddToWishlist(ctx context.Context, userID int64, req *model.WishlistItemRequest) (*model.WishlistItem, error) {
	if req == nil || req.ProductID == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "product ID is required")
	}
	if !model.ValidProductType(req.ProductType) {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "invalid product type")
	}

	snapshot, err := s.resolveSnapshot(ctx, req.ProductType, req.ProductID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	item := &model.WishlistItem{
		ID:          uuid.New(),
		UserID:      userID,
		ProductType: req.ProductType,
		ProductID:   req.ProductID,
		Name:        snapshot.Name,
		Price:       snapshot.Price,
		CreatedAt:   time.Now(),
	}

	saved, err := s.wishlistRepo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// resolveSnapshot re-prices catalog items server-side; customized items have
// no catalog row and carry their own name and price.
func (s *cartService) resolveSnapshot(ctx context.Context, productType model.ProductType, productID, name string, price int64) (*model.ProductSnapshot, error) {
	if productType == model.ProductTypeCustomized {
		if name == "" || price <= 0 {
			return nil, model.NewDomainError(model.ErrCodeMissingField, "customized item requires a name and price")
		}
		return &model.ProductSnapshot{
			ProductType: productType,
			ProductID:   productID,
			Name:        name,
			Price:       price,
		}, nil
	}

	return s.productRepo.ResolveProduct(ctx, productType, productID)
}

func (s *cartService) RemoveFromWishlist(ctx context.Context, userID int64, id uuid.UUID) error {
	found, err := s.wishlistRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !found {
		return model.NewDomainError(model.ErrCodeProductNotFound, "wishlist item not found")
	}
	return nil
}
