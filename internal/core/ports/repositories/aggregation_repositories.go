package repositories

import (
	"context"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/policy"
)

// AggregationRepository computes visible record counts. Every region or category
// appears in the result, with zero when nothing is visible.
type AggregationRepository interface {
	// CountByCategory counts visible records per category in one region, ordered by category id.
	CountByCategory(ctx context.Context, regionID int64, filter policy.VisibilityFilter) ([]domain.CategoryCount, error)

	// CountByRegion counts visible records per region, ordered by region code.
	CountByRegion(ctx context.Context, filter policy.VisibilityFilter) ([]domain.RegionCount, error)
}
