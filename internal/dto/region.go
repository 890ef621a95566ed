package dto

import "github.com/SscSPs/records_management_app/internal/core/domain"

// RegionSummaryResponse is a region with the caller's visible record count.
type RegionSummaryResponse struct {
	RegionID int64  `json:"id"`
	Code     int    `json:"code"`
	Name     string `json:"name"`
	Count    int64  `json:"count"`
}

// RegionDetailResponse is a region with per-category visible counts.
type RegionDetailResponse struct {
	RegionID   int64                  `json:"id"`
	Code       int                    `json:"code"`
	Name       string                 `json:"name"`
	Categories []domain.CategoryCount `json:"files"`
}

// AnalyticsEntry is one row of the per-region analytics view.
type AnalyticsEntry struct {
	RegionCode int    `json:"regionCode"`
	RegionName string `json:"regionName"`
	Count      int64  `json:"count"`
}

// ToRegionDetailResponse converts a domain.RegionDetail to its response DTO
func ToRegionDetailResponse(d *domain.RegionDetail) RegionDetailResponse {
	return RegionDetailResponse{
		RegionID:   d.Region.ID,
		Code:       d.Region.Code,
		Name:       d.Region.Name,
		Categories: d.Categories,
	}
}

// ToCategoryCountMap converts per-category counts to the {name: count} shape.
func ToCategoryCountMap(counts []domain.CategoryCount) map[string]int64 {
	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		out[c.Name] = c.Count
	}
	return out
}

// ToAnalyticsResponse converts per-region counts to analytics rows.
func ToAnalyticsResponse(counts []domain.RegionCount) []AnalyticsEntry {
	out := make([]AnalyticsEntry, len(counts))
	for i, c := range counts {
		out[i] = AnalyticsEntry{RegionCode: c.RegionCode, RegionName: c.RegionName, Count: c.Count}
	}
	return out
}

// ToRegionSummaryResponse converts per-region counts to the region list shape.
func ToRegionSummaryResponse(counts []domain.RegionCount) []RegionSummaryResponse {
	out := make([]RegionSummaryResponse, len(counts))
	for i, c := range counts {
		out[i] = RegionSummaryResponse{RegionID: c.RegionID, Code: c.RegionCode, Name: c.RegionName, Count: c.Count}
	}
	return out
}
