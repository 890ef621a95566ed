package repositories

import (
	"context"

	"github.com/SscSPs/records_management_app/internal/core/domain"
)

// RegionReader defines read operations for regions
type RegionReader interface {
	// FindRegionByCode retrieves a region by its external code.
	FindRegionByCode(ctx context.Context, code int) (*domain.Region, error)

	// ListRegions retrieves every region ordered by code.
	ListRegions(ctx context.Context) ([]domain.Region, error)
}

// CategoryReader defines read operations for categories
type CategoryReader interface {
	// FindCategoryByName retrieves a category whose name matches exactly.
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)

	// FindCategoryByNameFold retrieves a category ignoring case.
	FindCategoryByNameFold(ctx context.Context, name string) (*domain.Category, error)

	// ListCategories retrieves every category ordered by id.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// ScopeRepositoryFacade combines region and category lookups
type ScopeRepositoryFacade interface {
	RegionReader
	CategoryReader
}

// ReferenceDataWriter loads static reference data during setup.
type ReferenceDataWriter interface {
	// UpsertReferenceData inserts or renames regions and categories in one transaction.
	UpsertReferenceData(ctx context.Context, regions []domain.Region, categories []domain.Category) error
}
