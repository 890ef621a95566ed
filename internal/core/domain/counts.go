package domain

// RegionCount is a region with the number of records visible to the caller.
type RegionCount struct {
	RegionID   int64  `json:"id"`
	RegionCode int    `json:"regionCode"`
	RegionName string `json:"regionName"`
	Count      int64  `json:"count"`
}

// CategoryCount is a category with the number of visible records in one region.
type CategoryCount struct {
	CategoryID  int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Count       int64  `json:"count"`
}

// RegionDetail is a region plus per-category visible counts.
type RegionDetail struct {
	Region     Region          `json:"region"`
	Categories []CategoryCount `json:"files"`
}
