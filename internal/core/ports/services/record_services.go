package services

import (
	"context"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/dto"
)

// RecordReaderSvc defines read operations for records
type RecordReaderSvc interface {
	// ListRecords returns the records of a scope visible to the principal.
	ListRecords(ctx context.Context, principal domain.Principal, regionCode int, categoryName string, query domain.RecordQuery) ([]domain.Record, error)

	// GetRecord returns one visible record, or ErrNotFound.
	GetRecord(ctx context.Context, principal domain.Principal, recordID int64) (*domain.Record, error)
}

// RecordWriterSvc defines write operations for records
type RecordWriterSvc interface {
	// CreateRecord creates a record owned by the principal with the next serial of its scope.
	CreateRecord(ctx context.Context, principal domain.Principal, req dto.CreateRecordRequest) (*domain.Record, error)

	// UpdateRecord changes the mutable fields of a record the principal may mutate.
	UpdateRecord(ctx context.Context, principal domain.Principal, recordID int64, req dto.UpdateRecordRequest) (*domain.Record, error)

	// DeleteRecord removes a record the principal may delete.
	DeleteRecord(ctx context.Context, principal domain.Principal, recordID int64) error
}

// RecordSvcFacade combines all record-related service interfaces
type RecordSvcFacade interface {
	RecordReaderSvc
	RecordWriterSvc
}
