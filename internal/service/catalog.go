package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/repo"
)

// CatalogService serves the read-only browsing endpoints: the interest
// options shown in the quiz and the fallback camp listing.
type CatalogService struct {
	categories repo.CategoryRepo
	camps      repo.CampRepo
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(categories repo.CategoryRepo, camps repo.CampRepo) *CatalogService {
	return &CatalogService{categories: categories, camps: camps}
}

// ListCategories returns categories whose slug starts with prefix.
// The prefix is lowercased and trimmed to match slug form.
func (s *CatalogService) ListCategories(ctx context.Context, prefix string) ([]domain.Category, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	categories, err := s.categories.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ListCategories: %w", err)
	}
	return categories, nil
}

// GetCategory returns the category with the given slug.
func (s *CatalogService) GetCategory(ctx context.Context, slug string) (domain.Category, error) {
	c, err := s.categories.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CatalogService.GetCategory: %w", err)
	}
	return c, nil
}

// ListCamps returns one page of published camps and the total count.
func (s *CatalogService) ListCamps(ctx context.Context, p domain.Page) ([]domain.Camp, int64, error) {
	camps, total, err := s.camps.ListPublishedPage(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CatalogService.ListCamps: %w", err)
	}
	return camps, total, nil
}
