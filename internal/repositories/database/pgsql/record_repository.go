package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/policy"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/records_management_app/internal/models"
	"github.com/SscSPs/records_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordColumns = `
	r.id, r.region_id, r.category_id, r.owner_id, r.serial,
	r.employee_name, r.postal_account, r.amount, r.reimbursement_amount,
	r.treatment_date, r.notes, r.status, r.created_at, r.updated_at,
	g.code AS region_code, c.name AS category_name
`

const recordFrom = `
	FROM records r
	JOIN regions g ON g.id = r.region_id
	JOIN categories c ON c.id = r.category_id
`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type PgxRecordRepository struct {
	BaseRepository
	locker portsrepo.ScopeLocker
}

// newPgxRecordRepository creates a record repository that serializes serial
// allocation with locker.
func newPgxRecordRepository(pool *pgxpool.Pool, locker portsrepo.ScopeLocker) *PgxRecordRepository {
	if locker == nil {
		locker = NewAdvisoryScopeLocker()
	}
	return &PgxRecordRepository{
		BaseRepository: BaseRepository{Pool: pool},
		locker:         locker,
	}
}

var _ portsrepo.RecordRepositoryFacade = (*PgxRecordRepository)(nil)

// CreateRecord takes the scope lock, computes the next serial and inserts the row
// in one transaction. Nothing is visible to other sessions until commit.
func (r *PgxRecordRepository) CreateRecord(ctx context.Context, record domain.Record) (*domain.Record, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}

	release, err := r.locker.Lock(ctx, tx, record.RegionID, record.CategoryID)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return nil, err
	}
	// Deferred calls run in reverse: the transaction ends before the lock is released.
	defer release(context.WithoutCancel(ctx))
	defer r.Rollback(ctx, tx)

	serial, err := nextSerial(ctx, tx, record.RegionID, record.CategoryID)
	if err != nil {
		return nil, err
	}
	record.Serial = serial

	m := mapping.ToModelRecord(record)
	query := `
		INSERT INTO records (
			region_id, category_id, owner_id, serial, employee_name, postal_account,
			amount, reimbursement_amount, treatment_date, notes, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, query,
		m.RegionID,
		m.CategoryID,
		m.OwnerID,
		m.Serial,
		m.EmployeeName,
		m.PostalAccount,
		m.Amount,
		m.ReimbursementAmount,
		m.TreatmentDate,
		m.Notes,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&record.ID)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("failed to insert record in scope %d/%d", record.RegionID, record.CategoryID), err)
	}

	// Return the row as stored, with column rounding and timestamp precision applied.
	created, err := r.lockRecord(ctx, tx, record.ID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID int64, filter policy.VisibilityFilter) (*domain.Record, error) {
	args := queryArgs{recordID}
	query := `SELECT ` + recordColumns + recordFrom +
		` WHERE r.id = $1 AND ` + visibilityCondition(filter, "r", &args) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("failed to query record %d", recordID), err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Record])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, classifyError(fmt.Sprintf("failed to scan record %d", recordID), err)
	}
	record := mapping.ToDomainRecord(m)
	return &record, nil
}

func (r *PgxRecordRepository) ListRecords(ctx context.Context, scope domain.Scope, filter policy.VisibilityFilter, q domain.RecordQuery) ([]domain.Record, error) {
	args := queryArgs{scope.RegionID(), scope.CategoryID()}
	var sb strings.Builder
	sb.WriteString(`SELECT ` + recordColumns + recordFrom)
	sb.WriteString(` WHERE r.region_id = $1 AND r.category_id = $2 AND `)
	sb.WriteString(visibilityCondition(filter, "r", &args))

	if search := strings.TrimSpace(q.Search); search != "" {
		sb.WriteString(` AND r.postal_account ILIKE '%' || ` + args.add(escapeLike(search)) + ` || '%'`)
	}
	if statuses := q.Status.Statuses(); statuses != nil {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		sb.WriteString(` AND r.status = ANY(` + args.add(values) + `)`)
	}
	sb.WriteString(` ORDER BY r.treatment_date DESC, r.serial DESC;`)

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("failed to query records in scope %d/%d", scope.RegionID(), scope.CategoryID()), err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Record])
	if err != nil {
		return nil, classifyError("failed to scan records", err)
	}
	return mapping.ToDomainRecordSlice(ms), nil
}

// lockRecord loads a record and holds its row lock for the rest of tx.
func (r *PgxRecordRepository) lockRecord(ctx context.Context, tx pgx.Tx, recordID int64) (*domain.Record, error) {
	query := `SELECT ` + recordColumns + recordFrom + ` WHERE r.id = $1 FOR UPDATE OF r;`
	rows, err := tx.Query(ctx, query, recordID)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("failed to lock record %d", recordID), err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Record])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, classifyError(fmt.Sprintf("failed to scan record %d", recordID), err)
	}
	record := mapping.ToDomainRecord(m)
	return &record, nil
}

// UpdateRecord persists the mutable fields returned by mutate. Scope, owner and
// serial always keep their stored values.
func (r *PgxRecordRepository) UpdateRecord(ctx context.Context, recordID int64, mutate portsrepo.RecordMutator) (*domain.Record, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	stored, err := r.lockRecord(ctx, tx, recordID)
	if err != nil {
		return nil, err
	}
	next, err := mutate(*stored)
	if err != nil {
		return nil, err
	}

	m := mapping.ToModelRecord(next)
	query := `
		UPDATE records
		SET employee_name = $1, postal_account = $2, amount = $3, reimbursement_amount = $4,
			treatment_date = $5, notes = $6, status = $7, updated_at = $8
		WHERE id = $9;
	`
	if _, err := tx.Exec(ctx, query,
		m.EmployeeName,
		m.PostalAccount,
		m.Amount,
		m.ReimbursementAmount,
		m.TreatmentDate,
		m.Notes,
		m.Status,
		m.UpdatedAt,
		recordID,
	); err != nil {
		return nil, classifyError(fmt.Sprintf("failed to update record %d", recordID), err)
	}

	updated, err := r.lockRecord(ctx, tx, recordID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PgxRecordRepository) DeleteRecord(ctx context.Context, recordID int64, authorize portsrepo.RecordAuthorizer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	stored, err := r.lockRecord(ctx, tx, recordID)
	if err != nil {
		return err
	}
	if err := authorize(*stored); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM records WHERE id = $1;`, recordID); err != nil {
		return classifyError(fmt.Sprintf("failed to delete record %d", recordID), err)
	}
	return r.Commit(ctx, tx)
}
