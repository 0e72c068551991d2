package assets

import (
	"context"
	"database/sql"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// CredentialRepository is a bun-backed CredentialStore for
// deployments that keep users in SQLite instead of the workbook.
type CredentialRepository struct {
	db *bun.DB
}

// NewCredentialRepository returns a credential store over the given
// database handle.
func NewCredentialRepository(db *bun.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// FindByUsername performs an exact, case-sensitive lookup.
func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	record := &User{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerrors.New("user not found", goerrors.CategoryNotFound).
				WithCode(goerrors.CodeNotFound).
				WithMetadata(map[string]any{
					"username": username,
				})
		}
		return nil, WrapStorageError(err, "failed to query users table")
	}

	return record, nil
}

var _ CredentialStore = (*CredentialRepository)(nil)
