package mapping

import (
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/models"
)

// ToDomainRegion converts a model Region to a domain Region
func ToDomainRegion(m models.Region) domain.Region {
	return domain.Region{ID: m.RegionID, Code: m.Code, Name: m.Name}
}

// ToDomainRegionSlice converts a slice of model Regions to domain Regions
func ToDomainRegionSlice(ms []models.Region) []domain.Region {
	ds := make([]domain.Region, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRegion(m)
	}
	return ds
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{ID: m.CategoryID, Name: m.Name, DisplayName: m.DisplayName}
}

// ToDomainCategorySlice converts a slice of model Categories to domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
