package services

import (
	"context"

	"github.com/SscSPs/records_management_app/internal/core/domain"
)

// ScopeResolverSvc maps external region codes and category names to stored rows.
// Failures are *apperrors.ScopeNotFoundError naming the half that did not resolve.
type ScopeResolverSvc interface {
	// ResolveScope resolves both halves of a scope.
	ResolveScope(ctx context.Context, regionCode int, categoryName string) (*domain.Scope, error)

	// ResolveRegion resolves a region by exact code.
	ResolveRegion(ctx context.Context, regionCode int) (*domain.Region, error)

	// ResolveCategory resolves a category by exact name, then ignoring case.
	ResolveCategory(ctx context.Context, categoryName string) (*domain.Category, error)
}

// ScopeSvcFacade combines scope resolution with reference data listing
type ScopeSvcFacade interface {
	ScopeResolverSvc

	// ListCategories returns every category.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
