package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/records_management_app/internal/models"
	"github.com/SscSPs/records_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxScopeRepository struct {
	db *pgxpool.Pool
}

func newPgxScopeRepository(db *pgxpool.Pool) portsrepo.ScopeRepositoryFacade {
	return &PgxScopeRepository{db: db}
}

var _ portsrepo.ScopeRepositoryFacade = (*PgxScopeRepository)(nil)

func (r *PgxScopeRepository) FindRegionByCode(ctx context.Context, code int) (*domain.Region, error) {
	query := `SELECT id, code, name FROM regions WHERE code = $1;`
	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("failed to query region %d", code), err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Region])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, classifyError(fmt.Sprintf("failed to scan region %d", code), err)
	}
	region := mapping.ToDomainRegion(m)
	return &region, nil
}

func (r *PgxScopeRepository) ListRegions(ctx context.Context) ([]domain.Region, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name FROM regions ORDER BY code;`)
	if err != nil {
		return nil, classifyError("failed to query regions", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Region])
	if err != nil {
		return nil, classifyError("failed to scan regions", err)
	}
	return mapping.ToDomainRegionSlice(ms), nil
}

func (r *PgxScopeRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findCategory(ctx, `SELECT id, name, display_name FROM categories WHERE name = $1;`, name)
}

func (r *PgxScopeRepository) FindCategoryByNameFold(ctx context.Context, name string) (*domain.Category, error) {
	return r.findCategory(ctx, `SELECT id, name, display_name FROM categories WHERE lower(name) = lower($1) ORDER BY id LIMIT 1;`, name)
}

func (r *PgxScopeRepository) findCategory(ctx context.Context, query, name string) (*domain.Category, error) {
	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("failed to query category %q", name), err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, classifyError(fmt.Sprintf("failed to scan category %q", name), err)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

func (r *PgxScopeRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, display_name FROM categories ORDER BY id;`)
	if err != nil {
		return nil, classifyError("failed to query categories", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, classifyError("failed to scan categories", err)
	}
	return mapping.ToDomainCategorySlice(ms), nil
}
