package services

import (
	"context"

	"github.com/SscSPs/records_management_app/internal/core/domain"
)

// AggregationSvc computes record counts restricted to what the principal can see.
type AggregationSvc interface {
	// CountByCategory counts visible records per category of one region.
	CountByCategory(ctx context.Context, principal domain.Principal, regionCode int) ([]domain.CategoryCount, error)

	// CountByRegion counts visible records per region, largest first.
	CountByRegion(ctx context.Context, principal domain.Principal) ([]domain.RegionCount, error)

	// ListRegions returns every region with its visible count, ordered by code.
	ListRegions(ctx context.Context, principal domain.Principal) ([]domain.RegionCount, error)

	// RegionDetail returns a region with per-category visible counts.
	RegionDetail(ctx context.Context, principal domain.Principal, regionCode int) (*domain.RegionDetail, error)
}
