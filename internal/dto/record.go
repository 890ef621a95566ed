package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of treatment dates.
const DateLayout = "2006-01-02"

// Amounts are stored as NUMERIC(14,2).
const amountScale = 2

var maxAmount = decimal.New(1, 12) // exclusive

// Column widths of the records table.
const (
	maxEmployeeNameLen  = 255
	maxPostalAccountLen = 100
)

// CreateRecordRequest defines the data needed to create a record.
// Owner, serial and role are never read from the body.
type CreateRecordRequest struct {
	RegionCode          int             `json:"regionCode" binding:"required"`
	CategoryName        string          `json:"categoryName" binding:"required"`
	EmployeeName        string          `json:"employeeName" binding:"required,max=255"`
	PostalAccount       string          `json:"postalAccount" binding:"required,max=100"`
	Amount              json.RawMessage `json:"amount" swaggertype:"number"`
	ReimbursementAmount json.RawMessage `json:"reimbursementAmount,omitempty" swaggertype:"number"`
	TreatmentDate       string          `json:"treatmentDate" binding:"required"`
	Notes               *string         `json:"notes"`
	Status              string          `json:"status" binding:"omitempty,recordstatus"`
}

// UpdateRecordRequest defines the mutable fields of a record. Omitted fields are left unchanged.
type UpdateRecordRequest struct {
	EmployeeName        *string         `json:"employeeName" binding:"omitempty,max=255"`
	PostalAccount       *string         `json:"postalAccount" binding:"omitempty,max=100"`
	Amount              json.RawMessage `json:"amount,omitempty" swaggertype:"number"`
	ReimbursementAmount json.RawMessage `json:"reimbursementAmount,omitempty" swaggertype:"number"`
	TreatmentDate       *string         `json:"treatmentDate"`
	Notes               OptionalString  `json:"notes" swaggertype:"string"`
	Status              *string         `json:"status" binding:"omitempty,recordstatus"`
}

// ListRecordsParams defines query parameters for listing records in a scope.
type ListRecordsParams struct {
	Search string `form:"search"`
	Filter string `form:"filter"` // validated by domain.ParseStatusFilter
}

// ExportRecordsParams defines query parameters for exporting records in a scope.
type ExportRecordsParams struct {
	ListRecordsParams
	Format string `form:"format,default=csv" binding:"omitempty,oneof=csv xlsx"`
}

// RecordResponse defines the data returned for a record.
type RecordResponse struct {
	RecordID            int64               `json:"id"`
	RegionID            int64               `json:"regionId"`
	CategoryID          int64               `json:"categoryId"`
	RegionCode          int                 `json:"regionCode,omitempty"`
	CategoryName        string              `json:"categoryName,omitempty"`
	OwnerID             int64               `json:"ownerId"`
	Serial              int64               `json:"serial"`
	EmployeeName        string              `json:"employeeName"`
	PostalAccount       string              `json:"postalAccount"`
	Amount              decimal.Decimal     `json:"amount" swaggertype:"string"`
	ReimbursementAmount decimal.Decimal     `json:"reimbursementAmount" swaggertype:"string"`
	TreatmentDate       string              `json:"treatmentDate"`
	Notes               *string             `json:"notes"`
	Status              domain.RecordStatus `json:"status"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// DeleteResponse is returned by delete endpoints.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OptionalString distinguishes an omitted field from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON records that the field was present.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// ParseAmount reads a monetary amount sent as a JSON number or numeric string.
// Missing, null, non-numeric and negative values are rejected.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", apperrors.ErrInvalidAmount)
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
		}
		text = strings.TrimSpace(s)
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidAmount, text)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", apperrors.ErrInvalidAmount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount must be less than %s", apperrors.ErrInvalidAmount, maxAmount)
	}
	if !amount.Equal(amount.Truncate(amountScale)) {
		return decimal.Zero, fmt.Errorf("%w: amount has more than %d decimal places", apperrors.ErrInvalidAmount, amountScale)
	}
	return amount, nil
}

// ParseOptionalAmount is ParseAmount where an omitted or null value means zero.
func ParseOptionalAmount(raw json.RawMessage) (decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero, nil
	}
	return ParseAmount(raw)
}

// ParseTreatmentDate accepts YYYY-MM-DD or an RFC 3339 timestamp and keeps the calendar date.
func ParseTreatmentDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperrors.NewValidationFailedError(fmt.Sprintf("treatmentDate %q is not a date", s))
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

// CheckRecordText validates the required text fields of a new record.
func CheckRecordText(employeeName, postalAccount string) error {
	if err := checkTextField("employeeName", employeeName, maxEmployeeNameLen); err != nil {
		return err
	}
	return checkTextField("postalAccount", postalAccount, maxPostalAccountLen)
}

func checkTextField(field, value string, max int) error {
	if value == "" {
		return apperrors.NewValidationFailedError(field + " must not be empty")
	}
	if utf8.RuneCountInString(value) > max {
		return apperrors.NewValidationFailedError(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}

// ToRecordChanges validates the request and converts it to domain changes.
func (r UpdateRecordRequest) ToRecordChanges() (domain.RecordChanges, error) {
	var changes domain.RecordChanges
	if r.EmployeeName != nil {
		name := strings.TrimSpace(*r.EmployeeName)
		if err := checkTextField("employeeName", name, maxEmployeeNameLen); err != nil {
			return changes, err
		}
		changes.EmployeeName = &name
	}
	if r.PostalAccount != nil {
		account := strings.TrimSpace(*r.PostalAccount)
		if err := checkTextField("postalAccount", account, maxPostalAccountLen); err != nil {
			return changes, err
		}
		changes.PostalAccount = &account
	}
	if len(r.Amount) > 0 {
		amount, err := ParseAmount(r.Amount)
		if err != nil {
			return changes, err
		}
		changes.Amount = &amount
	}
	if len(r.ReimbursementAmount) > 0 {
		amount, err := ParseOptionalAmount(r.ReimbursementAmount)
		if err != nil {
			return changes, err
		}
		changes.ReimbursementAmount = &amount
	}
	if r.TreatmentDate != nil {
		date, err := ParseTreatmentDate(*r.TreatmentDate)
		if err != nil {
			return changes, err
		}
		changes.TreatmentDate = &date
	}
	if r.Notes.Set {
		if r.Notes.Value == nil {
			changes.ClearNotes = true
		} else {
			notes := *r.Notes.Value
			changes.Notes = &notes
		}
	}
	if r.Status != nil {
		status, err := domain.ParseRecordStatus(*r.Status)
		if err != nil {
			return changes, apperrors.NewValidationFailedError(err.Error())
		}
		changes.Status = &status
	}
	return changes, nil
}

// ToRecordResponse converts a domain.Record to RecordResponse DTO
func ToRecordResponse(r *domain.Record) RecordResponse {
	return RecordResponse{
		RecordID:            r.ID,
		RegionID:            r.RegionID,
		CategoryID:          r.CategoryID,
		RegionCode:          r.RegionCode,
		CategoryName:        r.CategoryName,
		OwnerID:             r.OwnerID,
		Serial:              r.Serial,
		EmployeeName:        r.EmployeeName,
		PostalAccount:       r.PostalAccount,
		Amount:              r.Amount,
		ReimbursementAmount: r.ReimbursementAmount,
		TreatmentDate:       r.TreatmentDate.Format(DateLayout),
		Notes:               r.Notes,
		Status:              r.Status,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// ToListRecordResponse converts a slice of domain.Record to a slice of RecordResponse DTOs
func ToListRecordResponse(records []domain.Record) []RecordResponse {
	res := make([]RecordResponse, len(records))
	for i := range records {
		res[i] = ToRecordResponse(&records[i])
	}
	return res
}
