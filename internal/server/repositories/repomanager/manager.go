package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/recetario/internal/dbx"
	"github.com/dmitrijs2005/recetario/internal/server/repositories/cookbooks"
	"github.com/dmitrijs2005/recetario/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recetario/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a *sql.DB or to a running
// transaction, so services can group writes with dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Recipes(db dbx.DBTX) recipes.Repository
	Cookbooks(db dbx.DBTX) cookbooks.Repository
}
