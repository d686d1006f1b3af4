package recipes

import (
	"context"
	"database/sql"
	"testing"

	"fordinner/internal/models"
	"fordinner/internal/pkg/common"

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

func recipeColumns() []string {
	return []string{
		"recipe_id", "recipe_name", "cuisine_type", "meal_category",
		"preparation_time_minutes", "cooking_instructions", "image_url", "video_url", "source",
	}
}

func TestGet_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM recipes`).
		WithArgs("52772").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)

	_, err := repo.Get(context.Background(), "52772")
	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
}

func TestGet_Found(t *testing.T) {
	db, mock := newSQLMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM recipes`).
		WithArgs("52772").
		WillReturnRows(sqlmock.NewRows(recipeColumns()).
			AddRow("52772", "Teriyaki Chicken Casserole", "Japanese", "Chicken",
				45, "Cook for 45 minutes.", nil, nil, "TheMealDB"))

	repo := NewPostgresRepository(db)

	recipe, err := repo.Get(context.Background(), "52772")
	require.NoError(t, err)
	assert.Equal(t, "52772", recipe.ID)
	assert.Equal(t, "Teriyaki Chicken Casserole", recipe.Name)
	require.NotNil(t, recipe.PreparationTimeMinutes)
	assert.Equal(t, 45, *recipe.PreparationTimeMinutes)
	assert.Nil(t, recipe.ImageURL)
}

func TestInsert_ReportsConflict(t *testing.T) {
	db, mock := newSQLMockDB(t)

	// ON CONFLICT DO NOTHING yields no returned row when another
	// transaction already inserted the same id
	mock.ExpectQuery(`INSERT INTO recipes`).
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)

	inserted, err := repo.Insert(context.Background(), &models.Recipe{ID: "52772", Name: "X"})
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestInsert_NewRow(t *testing.T) {
	db, mock := newSQLMockDB(t)

	mock.ExpectQuery(`INSERT INTO recipes`).
		WillReturnRows(sqlmock.NewRows([]string{"recipe_id"}).AddRow("52772"))

	repo := NewPostgresRepository(db)

	inserted, err := repo.Insert(context.Background(), &models.Recipe{ID: "52772", Name: "X"})
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestLinkIngredient_DuplicateIsNoop(t *testing.T) {
	db, mock := newSQLMockDB(t)

	mock.ExpectExec(`INSERT INTO recipe_ingredients`).
		WithArgs("52772", int64(7), "3/4 cup").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)

	err := repo.LinkIngredient(context.Background(), "52772", 7, "3/4 cup")
	assert.NoError(t, err)
}
