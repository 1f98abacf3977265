package repository

import (
	"context"
	"errors"
	"fmt"

	"reyan-luxe/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// ListByUser retrieves the user's cart items.
func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	query := `
		SELECT id, user_id, product_type, product_id, name, price, quantity, image_url
		FROM cart_items
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		err := rows.Scan(&item.ID, &item.UserID, &item.ProductType, &item.ProductID,
			&item.Name, &item.Price, &item.Quantity, &item.ImageURL)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// Create inserts a new cart item.
func (r *cartRepository) Create(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_type, product_id, name, price, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query, item.ID, item.UserID, item.ProductType,
		item.ProductID, item.Name, item.Price, item.Quantity, item.ImageURL)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", item.ProductID).Msg("failed to create cart item")
		return fmt.Errorf("failed to create cart item: %w", err)
	}

	return nil
}

// UpdateQuantity updates the quantity of a user's cart item. Returns false
// when the item does not exist or belongs to another user.
func (r *cartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, userID int64, quantity int) (bool, error) {
	query := `UPDATE cart_items SET quantity = $3 WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to update cart item")
		return false, fmt.Errorf("failed to update cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a user's cart item. Returns false when nothing was deleted.
func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID, userID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to delete cart item")
		return false, fmt.Errorf("failed to delete cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteAllForUser empties the user's cart. Called after checkout.
func (r *cartRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to empty cart")
		return fmt.Errorf("failed to empty cart: %w", err)
	}
	return nil
}

// wishlistRepository implements the WishlistRepository interface using PostgreSQL.
type wishlistRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

// ListByUser retrieves the user's wishlist, newest first.
func (r *wishlistRepository) ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	query := `
		SELECT id, user_id, product_type, product_id, name, price, image_url, created_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItem
	for rows.Next() {
		var item model.WishlistItem
		err := rows.Scan(&item.ID, &item.UserID, &item.ProductType, &item.ProductID,
			&item.Name, &item.Price, &item.ImageURL, &item.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan wishlist row")
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist items: %w", err)
	}

	return items, nil
}

// Create saves a product to the wishlist. The (user_id, product_type,
// product_id) uniqueness constraint turns a concurrent double-save into a
// conflict we resolve by returning the already-saved item.
func (r *wishlistRepository) Create(ctx context.Context, item *model.WishlistItem) (*model.WishlistItem, error) {
	query := `
		INSERT INTO wishlist_items (id, user_id, product_type, product_id, name, price, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query, item.ID, item.UserID, item.ProductType,
		item.ProductID, item.Name, item.Price, item.ImageURL, item.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return r.getByProduct(ctx, item.UserID, item.ProductType, item.ProductID)
		}

		r.logger.Error().Err(err).Str("product_id", item.ProductID).Msg("failed to create wishlist item")
		return nil, fmt.Errorf("failed to create wishlist item: %w", err)
	}

	return item, nil
}

// getByProduct fetches the user's wishlist entry for a product.
func (r *wishlistRepository) getByProduct(ctx context.Context, userID int64, productType model.ProductType, productID string) (*model.WishlistItem, error) {
	query := `
		SELECT id, user_id, product_type, product_id, name, price, image_url, created_at
		FROM wishlist_items
		WHERE user_id = $1 AND product_type = $2 AND product_id = $3
	`

	var item model.WishlistItem
	err := r.pool.QueryRow(ctx, query, userID, productType, productID).Scan(
		&item.ID, &item.UserID, &item.ProductType, &item.ProductID,
		&item.Name, &item.Price, &item.ImageURL, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query wishlist item: %w", err)
	}

	return &item, nil
}

// Delete removes a user's wishlist item. Returns false when nothing was deleted.
func (r *wishlistRepository) Delete(ctx context.Context, id uuid.UUID, userID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_item_id", id.String()).Msg("failed to delete wishlist item")
		return false, fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
