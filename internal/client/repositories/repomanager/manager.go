// Package repomanager vends the local SQLite repositories bound to either
// the connection pool or a transaction.
package repomanager

import (
	"github.com/dmitrijs2005/friendstories/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/friendstories/internal/client/repositories/stories"
	"github.com/dmitrijs2005/friendstories/internal/client/repositories/users"
	"github.com/dmitrijs2005/friendstories/internal/dbx"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Stories(db dbx.DBTX) stories.Repository
	Metadata(db dbx.DBTX) metadata.Repository
}

type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Stories(db dbx.DBTX) stories.Repository {
	return stories.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}
