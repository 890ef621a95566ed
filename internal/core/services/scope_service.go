package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
)

type scopeService struct {
	BaseService
	scopeRepo portsrepo.ScopeRepositoryFacade
}

// NewScopeService creates the scope resolver.
func NewScopeService(scopeRepo portsrepo.ScopeRepositoryFacade) portssvc.ScopeSvcFacade {
	return &scopeService{scopeRepo: scopeRepo}
}

var _ portssvc.ScopeSvcFacade = (*scopeService)(nil)

func (s *scopeService) ResolveScope(ctx context.Context, regionCode int, categoryName string) (*domain.Scope, error) {
	region, err := s.ResolveRegion(ctx, regionCode)
	if err != nil {
		return nil, err
	}
	category, err := s.ResolveCategory(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	return &domain.Scope{Region: *region, Category: *category}, nil
}

func (s *scopeService) ResolveRegion(ctx context.Context, regionCode int) (*domain.Region, error) {
	region, err := s.scopeRepo.FindRegionByCode(ctx, regionCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewRegionNotFound(regionCode)
		}
		return nil, fmt.Errorf("failed to resolve region %d: %w", regionCode, err)
	}
	return region, nil
}

// ResolveCategory tries the exact name first; callers are inconsistent about casing,
// so a miss is retried ignoring case.
func (s *scopeService) ResolveCategory(ctx context.Context, categoryName string) (*domain.Category, error) {
	name := strings.TrimSpace(categoryName)
	if name == "" {
		return nil, apperrors.NewCategoryNotFound(categoryName)
	}

	category, err := s.scopeRepo.FindCategoryByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve category %q: %w", name, err)
	}

	category, err = s.scopeRepo.FindCategoryByNameFold(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewCategoryNotFound(name)
		}
		return nil, fmt.Errorf("failed to resolve category %q: %w", name, err)
	}
	return category, nil
}

func (s *scopeService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.scopeRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
