package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record represents a row of the records table joined with its scope keys.
type Record struct {
	RecordID            int64           `db:"id"`
	RegionID            int64           `db:"region_id"`
	CategoryID          int64           `db:"category_id"`
	OwnerID             int64           `db:"owner_id"`
	Serial              int64           `db:"serial"`
	EmployeeName        string          `db:"employee_name"`
	PostalAccount       string          `db:"postal_account"`
	Amount              decimal.Decimal `db:"amount"`
	ReimbursementAmount decimal.Decimal `db:"reimbursement_amount"`
	TreatmentDate       time.Time       `db:"treatment_date"`
	Notes               *string         `db:"notes"`
	Status              string          `db:"status"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
	RegionCode          int             `db:"region_code"`
	CategoryName        string          `db:"category_name"`
}
