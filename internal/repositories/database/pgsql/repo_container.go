package pgsql

import (
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository onto one pool. A nil locker selects
// the Postgres advisory lock for serial allocation.
func NewRepositoryProvider(dbPool *pgxpool.Pool, locker portsrepo.ScopeLocker) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ScopeRepo:       newPgxScopeRepository(dbPool),
		RecordRepo:      newPgxRecordRepository(dbPool, locker),
		AggregationRepo: newPgxAggregationRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		ReferenceRepo:   newPgxReferenceRepository(dbPool),
	}
}
