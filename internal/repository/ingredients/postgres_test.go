package ingredients

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestResolve_ExistingName(t *testing.T) {
	db, mock := newSQLMockDB(t)

	mock.ExpectQuery(`SELECT ingredient_id FROM ingredients`).
		WithArgs("Tomato").
		WillReturnRows(sqlmock.NewRows([]string{"ingredient_id"}).AddRow(int64(7)))

	repo := NewPostgresRepository(db)

	id, err := repo.Resolve(context.Background(), "Tomato")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_InsertsNewName(t *testing.T) {
	db, mock := newSQLMockDB(t)

	mock.ExpectQuery(`SELECT ingredient_id FROM ingredients`).
		WithArgs("Saffron").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO ingredients`).
		WithArgs("Saffron").
		WillReturnRows(sqlmock.NewRows([]string{"ingredient_id"}).AddRow(int64(42)))

	repo := NewPostgresRepository(db)

	id, err := repo.Resolve(context.Background(), "Saffron")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_LostInsertRace(t *testing.T) {
	db, mock := newSQLMockDB(t)

	// concurrent importer creates "tomato" between our select and insert;
	// ON CONFLICT DO NOTHING returns no row and the winner's id is read back
	mock.ExpectQuery(`SELECT ingredient_id FROM ingredients`).
		WithArgs("TOMATO").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO ingredients`).
		WithArgs("TOMATO").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT ingredient_id FROM ingredients`).
		WithArgs("TOMATO").
		WillReturnRows(sqlmock.NewRows([]string{"ingredient_id"}).AddRow(int64(7)))

	repo := NewPostgresRepository(db)

	id, err := repo.Resolve(context.Background(), "TOMATO")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_DBError(t *testing.T) {
	db, mock := newSQLMockDB(t)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(`SELECT ingredient_id FROM ingredients`).
		WithArgs("Tomato").
		WillReturnError(dbErr)

	repo := NewPostgresRepository(db)

	_, err := repo.Resolve(context.Background(), "Tomato")
	assert.ErrorIs(t, err, dbErr)
}
