package service

import (
	"context"
	"fmt"

	"reyan-luxe/internal/model"
	"reyan-luxe/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService as a thin read layer over the
// product repository.
type catalogService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) ListBracelets(ctx context.Context, categorySlug string) ([]model.Bracelet, error) {
	bracelets, err := s.productRepo.ListBracelets(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to list bracelets: %w", err)
	}
	return bracelets, nil
}

func (s *catalogService) GetBracelet(ctx context.Context, id int64) (*model.Bracelet, error) {
	bracelet, err := s.productRepo.GetBracelet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bracelet: %w", err)
	}
	if bracelet == nil {
		return nil, model.ErrProductNotFound
	}
	return bracelet, nil
}

func (s *catalogService) ListChains(ctx context.Context, categorySlug string) ([]model.Chain, error) {
	chains, err := s.productRepo.ListChains(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to list chains: %w", err)
	}
	return chains, nil
}

func (s *catalogService) GetChain(ctx context.Context, id int64) (*model.Chain, error) {
	chain, err := s.productRepo.GetChain(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain: %w", err)
	}
	if chain == nil {
		return nil, model.ErrProductNotFound
	}
	return chain, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
