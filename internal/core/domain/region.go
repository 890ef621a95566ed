package domain

// Region is an administrative subdivision (wilaya). Code is the stable external key.
type Region struct {
	ID   int64  `json:"id"`
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Category is a document/treatment type ("file type"). Name is the external key,
// unique regardless of casing.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Scope is the (region, category) pair that serials are unique within.
type Scope struct {
	Region   Region
	Category Category
}

// RegionID returns the internal region identifier.
func (s Scope) RegionID() int64 { return s.Region.ID }

// CategoryID returns the internal category identifier.
func (s Scope) CategoryID() int64 { return s.Category.ID }
