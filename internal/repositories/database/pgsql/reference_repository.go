package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReferenceRepository struct {
	BaseRepository
}

func newPgxReferenceRepository(pool *pgxpool.Pool) portsrepo.ReferenceDataWriter {
	return &PgxReferenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReferenceDataWriter = (*PgxReferenceRepository)(nil)

// UpsertReferenceData is safe to run repeatedly. Existing rows keep their ids, so
// records stay attached when a name changes.
func (r *PgxReferenceRepository) UpsertReferenceData(ctx context.Context, regions []domain.Region, categories []domain.Category) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, region := range regions {
		batch.Queue(`
			INSERT INTO regions (code, name) VALUES ($1, $2)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name;
		`, region.Code, region.Name)
	}
	for _, category := range categories {
		batch.Queue(`
			INSERT INTO categories (name, display_name) VALUES ($1, $2)
			ON CONFLICT ((lower(name))) DO UPDATE SET display_name = EXCLUDED.display_name;
		`, category.Name, category.DisplayName)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return classifyError(fmt.Sprintf("failed to upsert reference row %d", i), err)
		}
	}
	if err := br.Close(); err != nil {
		return classifyError("failed to close reference batch", err)
	}
	return r.Commit(ctx, tx)
}
