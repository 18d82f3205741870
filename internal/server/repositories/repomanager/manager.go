package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/friendstories/internal/dbx"
	"github.com/dmitrijs2005/friendstories/internal/server/repositories/stories"
	"github.com/dmitrijs2005/friendstories/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// them either on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Stories(db dbx.DBTX) stories.Repository
}
