package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/exercisetracker/internal/dbx"
	"github.com/dmitrijs2005/exercisetracker/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// path can run on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
