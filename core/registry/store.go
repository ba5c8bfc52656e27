package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("registry not found")

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Registry, error) {
	const q = `SELECT * FROM registries WHERE registry_id = $1`

	var reg Registry
	if err := sqlx.GetContext(ctx, db, &reg, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Registry{}, ErrNotFound
		}
		return Registry{}, fmt.Errorf("selecting registry[%s]: %w", id, err)
	}
	return reg, nil
}
