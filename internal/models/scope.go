package models

// Region represents a row of the regions table.
type Region struct {
	RegionID int64  `db:"id"`
	Code     int    `db:"code"`
	Name     string `db:"name"`
}

// Category represents a row of the categories table.
type Category struct {
	CategoryID  int64  `db:"id"`
	Name        string `db:"name"`
	DisplayName string `db:"display_name"`
}
