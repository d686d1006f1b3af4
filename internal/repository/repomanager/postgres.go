package repomanager

import (
	"fordinner/internal/dbx"
	"fordinner/internal/repository/ingredients"
	"fordinner/internal/repository/recipes"
	"fordinner/internal/repository/saved"
	"fordinner/internal/repository/users"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Recipes(db dbx.DBTX) recipes.Repository {
	return recipes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Ingredients(db dbx.DBTX) ingredients.Repository {
	return ingredients.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Saved(db dbx.DBTX) saved.Repository {
	return saved.NewPostgresRepository(db)
}
