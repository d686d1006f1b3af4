package ingredients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fordinner/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	selectQuery = `SELECT ingredient_id FROM ingredients
	 WHERE lower(ingredient_name) = lower($1)
	 `

	insertQuery = `INSERT INTO ingredients (ingredient_name)
	 VALUES ($1)
	 ON CONFLICT ((lower(ingredient_name))) DO NOTHING
	 RETURNING ingredient_id
	 `
)

// Resolve looks the name up case-insensitively and inserts it when
// absent. The unique index on lower(ingredient_name) closes the race
// between concurrent importers: a conflicting insert returns no row,
// and the winner's id is read back instead.
func (r *PostgresRepository) Resolve(ctx context.Context, name string) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx, selectQuery, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("db error: %w", err)
	}

	err = r.db.QueryRowContext(ctx, insertQuery, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("db error: %w", err)
	}

	// Lost the insert race; the winner's row is committed by now.
	if err := r.db.QueryRowContext(ctx, selectQuery, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}
