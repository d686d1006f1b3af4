package recipe

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"fordinner/internal/core/mealdb"
	"fordinner/internal/dbx"
	"fordinner/internal/models"
	"fordinner/internal/pkg/common"
	"fordinner/internal/repository/ingredients"
	"fordinner/internal/repository/recipes"
	"fordinner/internal/repository/saved"
	"fordinner/internal/repository/users"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeSource struct {
	recipe *mealdb.Recipe
	err    error
	calls  int
}

func (f *fakeSource) GetByID(ctx context.Context, mealID string) (*mealdb.Recipe, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.recipe, nil
}

type fakeRecipesRepo struct {
	rows map[string]*models.Recipe

	insertConflict bool
	insertErr      error
	inserted       []*models.Recipe

	linkErr   error
	linkAfter int // fail once this many links succeeded
	links     [][2]any
}

func (f *fakeRecipesRepo) Get(ctx context.Context, id string) (*models.Recipe, error) {
	if r, ok := f.rows[id]; ok {
		return r, nil
	}
	return nil, common.ErrRecipeNotFound
}

func (f *fakeRecipesRepo) Insert(ctx context.Context, recipe *models.Recipe) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	if f.insertConflict {
		// simulate the concurrent winner's committed row becoming visible
		if f.rows == nil {
			f.rows = map[string]*models.Recipe{}
		}
		f.rows[recipe.ID] = &models.Recipe{ID: recipe.ID, Name: recipe.Name}
		return false, nil
	}
	f.inserted = append(f.inserted, recipe)
	return true, nil
}

func (f *fakeRecipesRepo) LinkIngredient(ctx context.Context, recipeID string, ingredientID int64, quantity string) error {
	if f.linkErr != nil && len(f.links) >= f.linkAfter {
		return f.linkErr
	}
	f.links = append(f.links, [2]any{recipeID, ingredientID})
	return nil
}

type fakeIngredientsRepo struct {
	ids  map[string]int64
	next int64
	err  error
}

func (f *fakeIngredientsRepo) Resolve(ctx context.Context, name string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.ids == nil {
		f.ids = map[string]int64{}
	}
	if id, ok := f.ids[name]; ok {
		return id, nil
	}
	f.next++
	f.ids[name] = f.next
	return f.next, nil
}

type fakeSavedRepo struct {
	existing  map[string]bool
	insertErr error
	inserts   int
	deleted   bool
	listOut   []models.SavedRecipe
}

func (f *fakeSavedRepo) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	return f.existing[userID+"/"+recipeID], nil
}

func (f *fakeSavedRepo) Insert(ctx context.Context, userID, recipeID string, notes *string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserts++
	return nil
}

func (f *fakeSavedRepo) Delete(ctx context.Context, userID, recipeID string) (bool, error) {
	return f.deleted, nil
}

func (f *fakeSavedRepo) ListByUser(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	return f.listOut, nil
}

type fakeRepoManager struct {
	recipes     *fakeRecipesRepo
	ingredients *fakeIngredientsRepo
	saved       *fakeSavedRepo
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository             { return nil }
func (m *fakeRepoManager) Recipes(db dbx.DBTX) recipes.Repository         { return m.recipes }
func (m *fakeRepoManager) Ingredients(db dbx.DBTX) ingredients.Repository { return m.ingredients }
func (m *fakeRepoManager) Saved(db dbx.DBTX) saved.Repository             { return m.saved }

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func strptr(s string) *string { return &s }

func sourceRecipe() *mealdb.Recipe {
	return &mealdb.Recipe{
		MealDBID:     "52772",
		Name:         "Teriyaki Chicken Casserole",
		Category:     strptr("Chicken"),
		Area:         strptr("Japanese"),
		Instructions: strptr("Cook for 45 minutes."),
		Ingredients: []mealdb.IngredientMeasure{
			{Name: "soy sauce", Measure: "3/4 cup"},
			{Name: "water", Measure: "1/2 cup"},
			{Name: "chicken breasts", Measure: "2"},
		},
	}
}

// --- tests ---

func TestSaveRecipe_FreshImport(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	source := &fakeSource{recipe: sourceRecipe()}
	rm := &fakeRepoManager{
		recipes:     &fakeRecipesRepo{},
		ingredients: &fakeIngredientsRepo{},
		saved:       &fakeSavedRepo{},
	}
	s := NewService(db, rm, source)

	result, err := s.SaveRecipe(context.Background(), "u1", "52772", strptr("weeknight"))
	require.NoError(t, err)

	assert.Equal(t, "52772", result.RecipeID)
	assert.Equal(t, "Teriyaki Chicken Casserole", result.RecipeName)
	assert.False(t, result.AlreadySaved)

	require.Len(t, rm.recipes.inserted, 1)
	inserted := rm.recipes.inserted[0]
	assert.Equal(t, "Japanese", *inserted.CuisineType)
	assert.Equal(t, "Chicken", *inserted.MealCategory)
	// estimator fallback fires because the source has no prep time
	require.NotNil(t, inserted.PreparationTimeMinutes)
	assert.Equal(t, 45, *inserted.PreparationTimeMinutes)
	require.NotNil(t, inserted.Source)
	assert.Equal(t, "TheMealDB", *inserted.Source)

	assert.Len(t, rm.recipes.links, 3)
	assert.Equal(t, 1, rm.saved.inserts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRecipe_ShortCircuitsExistingRecipe(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	source := &fakeSource{recipe: sourceRecipe()}
	rm := &fakeRepoManager{
		recipes: &fakeRecipesRepo{rows: map[string]*models.Recipe{
			"52772": {ID: "52772", Name: "Teriyaki Chicken Casserole"},
		}},
		ingredients: &fakeIngredientsRepo{},
		saved:       &fakeSavedRepo{},
	}
	s := NewService(db, rm, source)

	result, err := s.SaveRecipe(context.Background(), "u1", "52772", nil)
	require.NoError(t, err)

	assert.Equal(t, "52772", result.RecipeID)
	assert.False(t, result.AlreadySaved)

	// no re-fetch, no re-link
	assert.Equal(t, 0, source.calls)
	assert.Empty(t, rm.recipes.inserted)
	assert.Empty(t, rm.recipes.links)
	assert.Equal(t, 1, rm.saved.inserts)
}

func TestSaveRecipe_Idempotent(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		recipes: &fakeRecipesRepo{rows: map[string]*models.Recipe{
			"52772": {ID: "52772", Name: "Teriyaki Chicken Casserole"},
		}},
		ingredients: &fakeIngredientsRepo{},
		saved:       &fakeSavedRepo{existing: map[string]bool{"u1/52772": true}},
	}
	s := NewService(db, rm, &fakeSource{})

	result, err := s.SaveRecipe(context.Background(), "u1", "52772", nil)
	require.NoError(t, err)

	assert.True(t, result.AlreadySaved)
	assert.Equal(t, 0, rm.saved.inserts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRecipe_UnknownExternalID(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		recipes:     &fakeRecipesRepo{},
		ingredients: &fakeIngredientsRepo{},
		saved:       &fakeSavedRepo{},
	}
	s := NewService(db, rm, &fakeSource{err: common.ErrRecipeNotFound})

	_, err := s.SaveRecipe(context.Background(), "u1", "0", nil)

	ce, ok := common.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrCodeNotFound, ce.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRecipe_RollsBackOnLinkFailure(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		recipes: &fakeRecipesRepo{
			linkErr:   errors.New("constraint violated"),
			linkAfter: 1, // first link lands, second fails mid-import
		},
		ingredients: &fakeIngredientsRepo{},
		saved:       &fakeSavedRepo{},
	}
	s := NewService(db, rm, &fakeSource{recipe: sourceRecipe()})

	_, err := s.SaveRecipe(context.Background(), "u1", "52772", nil)

	ce, ok := common.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrCodeTransaction, ce.Code)

	// no commit happened and nothing reached the association table
	assert.Equal(t, 0, rm.saved.inserts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRecipe_LostInsertRace(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		recipes:     &fakeRecipesRepo{insertConflict: true},
		ingredients: &fakeIngredientsRepo{},
		saved:       &fakeSavedRepo{},
	}
	s := NewService(db, rm, &fakeSource{recipe: sourceRecipe()})

	result, err := s.SaveRecipe(context.Background(), "u1", "52772", nil)
	require.NoError(t, err)

	// loser re-reads the winner's row and leaves linking to the winner
	assert.Equal(t, "52772", result.RecipeID)
	assert.Empty(t, rm.recipes.links)
	assert.Equal(t, 1, rm.saved.inserts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRecipe_MissingID(t *testing.T) {
	s := NewService(nil, &fakeRepoManager{}, &fakeSource{})

	_, err := s.SaveRecipe(context.Background(), "u1", "", nil)
	assert.True(t, common.IsValidationError(err))
}

func TestSaveRecipe_UpstreamFailureKeepsCode(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		recipes:     &fakeRecipesRepo{},
		ingredients: &fakeIngredientsRepo{},
		saved:       &fakeSavedRepo{},
	}
	upstream := common.WrapError(common.ErrSourceUnavailable, errors.New("dial timeout"))
	s := NewService(db, rm, &fakeSource{err: upstream})

	_, err := s.SaveRecipe(context.Background(), "u1", "52772", nil)

	ce, ok := common.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrCodeUpstream, ce.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnsaveRecipe(t *testing.T) {
	db, _ := newSQLMockDB(t)

	rm := &fakeRepoManager{saved: &fakeSavedRepo{deleted: true}}
	s := NewService(db, rm, &fakeSource{})

	assert.NoError(t, s.UnsaveRecipe(context.Background(), "u1", "52772"))

	rm.saved.deleted = false
	err := s.UnsaveRecipe(context.Background(), "u1", "52772")
	assert.ErrorIs(t, err, common.ErrSavedNotFound)
}

func TestListSaved(t *testing.T) {
	db, _ := newSQLMockDB(t)

	rm := &fakeRepoManager{saved: &fakeSavedRepo{listOut: []models.SavedRecipe{
		{RecipeID: "52772", RecipeName: "Teriyaki Chicken Casserole"},
	}}}
	s := NewService(db, rm, &fakeSource{})

	list, err := s.ListSaved(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "52772", list[0].RecipeID)
}
