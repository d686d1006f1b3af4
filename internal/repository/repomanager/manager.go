package repomanager

import (
	"fordinner/internal/dbx"
	"fordinner/internal/repository/ingredients"
	"fordinner/internal/repository/recipes"
	"fordinner/internal/repository/saved"
	"fordinner/internal/repository/users"
)

// RepositoryManager hands out repositories bound to a query handle,
// which may be the pooled *sql.DB or an open *sql.Tx.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Recipes(db dbx.DBTX) recipes.Repository
	Ingredients(db dbx.DBTX) ingredients.Repository
	Saved(db dbx.DBTX) saved.Repository
}
