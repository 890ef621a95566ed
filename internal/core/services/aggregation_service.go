package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/policy"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"go.opentelemetry.io/otel/attribute"
)

type aggregationService struct {
	BaseService
	aggregationRepo portsrepo.AggregationRepository
	scopes          portssvc.ScopeResolverSvc
}

// NewAggregationService creates the service behind dashboards and analytics.
// Counts are computed per request.
func NewAggregationService(aggregationRepo portsrepo.AggregationRepository, scopes portssvc.ScopeResolverSvc) portssvc.AggregationSvc {
	return &aggregationService{aggregationRepo: aggregationRepo, scopes: scopes}
}

var _ portssvc.AggregationSvc = (*aggregationService)(nil)

func (s *aggregationService) CountByCategory(ctx context.Context, principal domain.Principal, regionCode int) (counts []domain.CategoryCount, err error) {
	ctx, span := s.StartSpan(ctx, "AggregationService.CountByCategory", principal, attribute.Int("region.code", regionCode))
	defer func() { s.EndSpan(span, err) }()

	region, err := s.scopes.ResolveRegion(ctx, regionCode)
	if err != nil {
		return nil, err
	}
	counts, err = s.aggregationRepo.CountByCategory(ctx, region.ID, policy.Filter(principal))
	if err != nil {
		s.LogError(ctx, err, "Failed to count records by category",
			append(principalAttrs(principal), slog.Int("region_code", regionCode))...)
		return nil, err
	}
	return counts, nil
}

func (s *aggregationService) CountByRegion(ctx context.Context, principal domain.Principal) (counts []domain.RegionCount, err error) {
	ctx, span := s.StartSpan(ctx, "AggregationService.CountByRegion", principal)
	defer func() { s.EndSpan(span, err) }()

	counts, err = s.aggregationRepo.CountByRegion(ctx, policy.Filter(principal))
	if err != nil {
		s.LogError(ctx, err, "Failed to count records by region", principalAttrs(principal)...)
		return nil, err
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].RegionCode < counts[j].RegionCode
	})
	return counts, nil
}

func (s *aggregationService) ListRegions(ctx context.Context, principal domain.Principal) (counts []domain.RegionCount, err error) {
	ctx, span := s.StartSpan(ctx, "AggregationService.ListRegions", principal)
	defer func() { s.EndSpan(span, err) }()

	counts, err = s.aggregationRepo.CountByRegion(ctx, policy.Filter(principal))
	if err != nil {
		s.LogError(ctx, err, "Failed to list regions", principalAttrs(principal)...)
		return nil, err
	}
	return counts, nil
}

func (s *aggregationService) RegionDetail(ctx context.Context, principal domain.Principal, regionCode int) (*domain.RegionDetail, error) {
	region, err := s.scopes.ResolveRegion(ctx, regionCode)
	if err != nil {
		return nil, err
	}
	counts, err := s.CountByCategory(ctx, principal, regionCode)
	if err != nil {
		return nil, err
	}
	return &domain.RegionDetail{Region: *region, Categories: counts}, nil
}
