package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const nextSerialQuery = `
	SELECT COALESCE(MAX(serial), 0) + 1
	FROM records
	WHERE region_id = $1 AND category_id = $2;
`

// nextSerial returns the next serial of a scope. It must run inside the creation
// transaction after the scope lock is held, otherwise two creators can read the same max.
func nextSerial(ctx context.Context, tx pgx.Tx, regionID, categoryID int64) (int64, error) {
	var serial int64
	if err := tx.QueryRow(ctx, nextSerialQuery, regionID, categoryID).Scan(&serial); err != nil {
		return 0, classifyError(fmt.Sprintf("failed to compute next serial for scope %d/%d", regionID, categoryID), err)
	}
	return serial, nil
}

// AdvisoryScopeLocker serializes creators of one scope with a transaction-level
// advisory lock. Postgres releases it on commit or rollback; scopes never block each other.
type AdvisoryScopeLocker struct{}

// NewAdvisoryScopeLocker returns the default scope locker.
func NewAdvisoryScopeLocker() *AdvisoryScopeLocker {
	return &AdvisoryScopeLocker{}
}

var _ portsrepo.ScopeLocker = (*AdvisoryScopeLocker)(nil)

// Lock blocks until the scope lock is granted or ctx is done.
func (l *AdvisoryScopeLocker) Lock(ctx context.Context, tx pgx.Tx, regionID, categoryID int64) (func(context.Context), error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1::int4, $2::int4);`, regionID, categoryID); err != nil {
		return nil, classifyError(fmt.Sprintf("failed to lock scope %d/%d", regionID, categoryID), err)
	}
	return func(context.Context) {}, nil
}
