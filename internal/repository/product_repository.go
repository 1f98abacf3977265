package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"reyan-luxe/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const braceletColumns = `
	b.id, b.name, b.description, b.price, b.image_url, b.badge,
	b.is_signature_piece, b.signature_category, b.category_id, b.created_at, b.updated_at
`

// ListBracelets retrieves bracelets, optionally filtered by category slug.
func (r *productRepository) ListBracelets(ctx context.Context, categorySlug string) ([]model.Bracelet, error) {
	query := `SELECT ` + braceletColumns + ` FROM bracelets b ORDER BY b.created_at DESC`
	args := []any{}
	if categorySlug != "" {
		query = `
			SELECT ` + braceletColumns + `
			FROM bracelets b
			JOIN categories c ON c.id = b.category_id
			WHERE c.slug = $1
			ORDER BY b.created_at DESC
		`
		args = append(args, categorySlug)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query bracelets")
		return nil, fmt.Errorf("failed to query bracelets: %w", err)
	}
	defer rows.Close()

	var bracelets []model.Bracelet
	for rows.Next() {
		var b model.Bracelet
		err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Price, &b.ImageURL,
			&b.Badge, &b.IsSignaturePiece, &b.SignatureCategory, &b.CategoryID,
			&b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan bracelet row")
			return nil, fmt.Errorf("failed to scan bracelet: %w", err)
		}
		bracelets = append(bracelets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bracelets: %w", err)
	}

	return bracelets, nil
}

// GetBracelet retrieves a single bracelet by id.
func (r *productRepository) GetBracelet(ctx context.Context, id int64) (*model.Bracelet, error) {
	query := `SELECT ` + braceletColumns + ` FROM bracelets b WHERE b.id = $1`

	var b model.Bracelet
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Description,
		&b.Price, &b.ImageURL, &b.Badge, &b.IsSignaturePiece, &b.SignatureCategory,
		&b.CategoryID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("bracelet_id", id).Msg("failed to query bracelet")
		return nil, fmt.Errorf("failed to query bracelet: %w", err)
	}

	return &b, nil
}

const chainColumns = `
	ch.id, ch.name, ch.description, ch.price, ch.image_url, ch.category_id, ch.created_at, ch.updated_at
`

// ListChains retrieves chains, optionally filtered by category slug.
func (r *productRepository) ListChains(ctx context.Context, categorySlug string) ([]model.Chain, error) {
	query := `SELECT ` + chainColumns + ` FROM chains ch ORDER BY ch.created_at DESC`
	args := []any{}
	if categorySlug != "" {
		query = `
			SELECT ` + chainColumns + `
			FROM chains ch
			JOIN categories c ON c.id = ch.category_id
			WHERE c.slug = $1
			ORDER BY ch.created_at DESC
		`
		args = append(args, categorySlug)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query chains")
		return nil, fmt.Errorf("failed to query chains: %w", err)
	}
	defer rows.Close()

	var chains []model.Chain
	for rows.Next() {
		var c model.Chain
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.ImageURL,
			&c.CategoryID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan chain row")
			return nil, fmt.Errorf("failed to scan chain: %w", err)
		}
		chains = append(chains, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chains: %w", err)
	}

	return chains, nil
}

// GetChain retrieves a single chain by id.
func (r *productRepository) GetChain(ctx context.Context, id int64) (*model.Chain, error) {
	query := `SELECT ` + chainColumns + ` FROM chains ch WHERE ch.id = $1`

	var c model.Chain
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description,
		&c.Price, &c.ImageURL, &c.CategoryID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("chain_id", id).Msg("failed to query chain")
		return nil, fmt.Errorf("failed to query chain: %w", err)
	}

	return &c, nil
}

// ListCategories retrieves active categories ordered by position.
func (r *productRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, slug, parent_id, group_name, is_active, position, show_in_menu
		FROM categories
		WHERE is_active = true
		ORDER BY position, name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.Group,
			&c.IsActive, &c.Position, &c.ShowInMenu)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// ResolveProduct looks up the price/name snapshot for a (type, id) pair.
// Customized products carry their own pricing and are resolved by the caller,
// so this only serves the two catalog families.
func (r *productRepository) ResolveProduct(ctx context.Context, productType model.ProductType, productID string) (*model.ProductSnapshot, error) {
	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		return nil, model.ErrProductNotFound
	}

	switch productType {
	case model.ProductTypeBracelet:
		b, err := r.GetBracelet(ctx, id)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, model.ErrProductNotFound
		}
		return &model.ProductSnapshot{
			ProductType: productType,
			ProductID:   productID,
			Name:        b.Name,
			Price:       b.Price,
		}, nil

	case model.ProductTypeChain:
		c, err := r.GetChain(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, model.ErrProductNotFound
		}
		return &model.ProductSnapshot{
			ProductType: productType,
			ProductID:   productID,
			Name:        c.Name,
			Price:       c.Price,
		}, nil

	default:
		return nil, model.ErrProductNotFound
	}
}
