package assets

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// AssetRepository is a bun-backed AssetStore. Unlike the workbook
// store it can issue a row-level UPDATE, so the read-modify-write
// span collapses into a single statement and RowsAffected decides
// applied vs not-found. The engine contract is identical either way.
type AssetRepository struct {
	db *bun.DB
}

// NewAssetRepository returns an asset store over the given database
// handle.
func NewAssetRepository(db *bun.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// OpenDB opens a SQLite-backed bun handle for the repositories.
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, WrapStorageError(err, "failed to open database")
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// LoadAll reconstructs the full asset list on every call.
func (r *AssetRepository) LoadAll(ctx context.Context) ([]Asset, error) {
	records := []Asset{}

	if err := r.db.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, WrapStorageError(err, "failed to load assets table")
	}

	return records, nil
}

// UpdateStatus overwrites the status of every row whose id matches.
// An unmatched id is a silent discard reported as UpdateNotFound.
func (r *AssetRepository) UpdateStatus(ctx context.Context, id string, status Status) (UpdateResult, error) {
	res, err := r.db.NewUpdate().
		Model((*Asset)(nil)).
		Set("status = ?", status).
		Where("trim(?TableAlias.id) = ?", NormalizeID(id)).
		Exec(ctx)

	if err != nil {
		return UpdateResult{}, WrapStorageError(err, "failed to update asset status")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return UpdateResult{}, WrapStorageError(err, "failed to read update result")
	}

	if affected == 0 {
		return UpdateResult{Outcome: UpdateNotFound}, nil
	}

	record := &Asset{}
	err = r.db.NewSelect().
		Model(record).
		Where("trim(?TableAlias.id) = ?", NormalizeID(id)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return UpdateResult{}, WrapStorageError(err, "failed to reload updated asset")
	}

	return UpdateResult{Outcome: UpdateApplied, Asset: record}, nil
}

var _ AssetStore = (*AssetRepository)(nil)
