package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/policy"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAggregationRepository struct {
	db *pgxpool.Pool
}

func newPgxAggregationRepository(db *pgxpool.Pool) portsrepo.AggregationRepository {
	return &PgxAggregationRepository{db: db}
}

var _ portsrepo.AggregationRepository = (*PgxAggregationRepository)(nil)

// CountByCategory keeps the visibility predicate in the join so categories without
// visible records are counted as zero.
func (r *PgxAggregationRepository) CountByCategory(ctx context.Context, regionID int64, filter policy.VisibilityFilter) ([]domain.CategoryCount, error) {
	args := queryArgs{regionID}
	query := `
		SELECT c.id, c.name, c.display_name, COUNT(r.id)
		FROM categories c
		LEFT JOIN records r
			ON r.category_id = c.id AND r.region_id = $1 AND ` + visibilityCondition(filter, "r", &args) + `
		GROUP BY c.id, c.name, c.display_name
		ORDER BY c.id;
	`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("failed to count records by category in region %d", regionID), err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryCount, error) {
		var c domain.CategoryCount
		err := row.Scan(&c.CategoryID, &c.Name, &c.DisplayName, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, classifyError("failed to scan category counts", err)
	}
	return counts, nil
}

func (r *PgxAggregationRepository) CountByRegion(ctx context.Context, filter policy.VisibilityFilter) ([]domain.RegionCount, error) {
	args := queryArgs{}
	query := `
		SELECT g.id, g.code, g.name, COUNT(r.id)
		FROM regions g
		LEFT JOIN records r
			ON r.region_id = g.id AND ` + visibilityCondition(filter, "r", &args) + `
		GROUP BY g.id, g.code, g.name
		ORDER BY g.code;
	`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError("failed to count records by region", err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RegionCount, error) {
		var c domain.RegionCount
		err := row.Scan(&c.RegionID, &c.RegionCode, &c.RegionName, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, classifyError("failed to scan region counts", err)
	}
	return counts, nil
}
