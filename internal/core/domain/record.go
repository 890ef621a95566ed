package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus is the processing state of a record.
type RecordStatus string

const (
	StatusCompleted  RecordStatus = "completed"
	StatusIncomplete RecordStatus = "incomplete"
	StatusPending    RecordStatus = "pending"
)

// ParseRecordStatus validates a status string.
func ParseRecordStatus(s string) (RecordStatus, error) {
	switch RecordStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusIncomplete:
		return StatusIncomplete, nil
	case StatusPending:
		return StatusPending, nil
	default:
		return "", fmt.Errorf("unknown record status %q", s)
	}
}

// Record is a reimbursement/treatment record. RegionID, CategoryID, OwnerID and Serial
// are fixed at creation.
type Record struct {
	ID                  int64
	RegionID            int64
	CategoryID          int64
	OwnerID             int64
	Serial              int64
	EmployeeName        string
	PostalAccount       string
	Amount              decimal.Decimal
	ReimbursementAmount decimal.Decimal
	TreatmentDate       time.Time
	Notes               *string
	Status              RecordStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Denormalized for responses; not persisted on the record row.
	RegionCode   int
	CategoryName string
}

// StatusFilter narrows a record listing by status.
type StatusFilter string

const (
	StatusFilterAny        StatusFilter = ""
	StatusFilterCompleted  StatusFilter = "completed"
	StatusFilterIncomplete StatusFilter = "incomplete" // matches incomplete and pending
)

// ParseStatusFilter validates the list filter query value.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case StatusFilterAny:
		return StatusFilterAny, nil
	case StatusFilterCompleted:
		return StatusFilterCompleted, nil
	case StatusFilterIncomplete:
		return StatusFilterIncomplete, nil
	default:
		return "", fmt.Errorf("unknown status filter %q", s)
	}
}

// Statuses returns the record statuses the filter admits; nil means no restriction.
func (f StatusFilter) Statuses() []RecordStatus {
	switch f {
	case StatusFilterCompleted:
		return []RecordStatus{StatusCompleted}
	case StatusFilterIncomplete:
		return []RecordStatus{StatusIncomplete, StatusPending}
	default:
		return nil
	}
}

// Admits reports whether a record with status s passes the filter.
func (f StatusFilter) Admits(s RecordStatus) bool {
	statuses := f.Statuses()
	if statuses == nil {
		return true
	}
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

// RecordQuery holds the optional narrowing applied when listing records in a scope.
type RecordQuery struct {
	Search string
	Status StatusFilter
}

// RecordChanges carries the mutable fields of an update. Nil means "leave unchanged".
type RecordChanges struct {
	EmployeeName        *string
	PostalAccount       *string
	Amount              *decimal.Decimal
	ReimbursementAmount *decimal.Decimal
	TreatmentDate       *time.Time
	Notes               *string
	ClearNotes          bool
	Status              *RecordStatus
}

// Apply returns a copy of r with the changes applied. Immutable fields are never touched.
func (c RecordChanges) Apply(r Record) Record {
	if c.EmployeeName != nil {
		r.EmployeeName = *c.EmployeeName
	}
	if c.PostalAccount != nil {
		r.PostalAccount = *c.PostalAccount
	}
	if c.Amount != nil {
		r.Amount = *c.Amount
	}
	if c.ReimbursementAmount != nil {
		r.ReimbursementAmount = *c.ReimbursementAmount
	}
	if c.TreatmentDate != nil {
		r.TreatmentDate = *c.TreatmentDate
	}
	if c.ClearNotes {
		r.Notes = nil
	} else if c.Notes != nil {
		notes := *c.Notes
		r.Notes = &notes
	}
	if c.Status != nil {
		r.Status = *c.Status
	}
	return r
}
