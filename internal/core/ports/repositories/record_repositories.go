package repositories

import (
	"context"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/policy"
	"github.com/jackc/pgx/v5"
)

// RecordMutator receives the stored, locked record and returns the row to persist.
// Returning an error aborts the transaction.
type RecordMutator func(stored domain.Record) (domain.Record, error)

// RecordAuthorizer receives the stored, locked record before it is deleted.
type RecordAuthorizer func(stored domain.Record) error

// RecordReader defines read operations for records
type RecordReader interface {
	// FindRecordByID retrieves a record admitted by the filter; otherwise ErrNotFound.
	FindRecordByID(ctx context.Context, recordID int64, filter policy.VisibilityFilter) (*domain.Record, error)

	// ListRecords retrieves the records of a scope admitted by the filter, newest treatment date first.
	ListRecords(ctx context.Context, scope domain.Scope, filter policy.VisibilityFilter, query domain.RecordQuery) ([]domain.Record, error)
}

// RecordWriter defines write operations for records
type RecordWriter interface {
	// CreateRecord allocates the next serial for the record's scope and inserts it
	// in the same transaction.
	CreateRecord(ctx context.Context, record domain.Record) (*domain.Record, error)

	// UpdateRecord locks the stored row, passes it to mutate and persists the result.
	UpdateRecord(ctx context.Context, recordID int64, mutate RecordMutator) (*domain.Record, error)

	// DeleteRecord locks the stored row, passes it to authorize and removes it.
	DeleteRecord(ctx context.Context, recordID int64, authorize RecordAuthorizer) error
}

// RecordRepositoryFacade combines all record-related repository interfaces
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
}

// ScopeLocker serializes serial allocation within one (region, category) scope.
// Lock is called inside the creation transaction; the returned release runs after
// the transaction ends, whatever its outcome.
type ScopeLocker interface {
	Lock(ctx context.Context, tx pgx.Tx, regionID, categoryID int64) (release func(context.Context), err error)
}
