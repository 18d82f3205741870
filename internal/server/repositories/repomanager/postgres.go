// Package repomanager provides the PostgreSQL RepositoryManager, wiring
// repository constructors and goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/friendstories/internal/dbx"
	"github.com/dmitrijs2005/friendstories/internal/server/migrations"
	"github.com/dmitrijs2005/friendstories/internal/server/repositories/stories"
	"github.com/dmitrijs2005/friendstories/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// SchemaVersion is the newest migration that carries no sample data.
const SchemaVersion = 1

type PostgresRepositoryManager struct {
	// Seed applies the sample-data migrations on top of the schema.
	Seed bool
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Stories(db dbx.DBTX) stories.Repository {
	return stories.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseUpToContext is a seam for testing goose.UpToContext.
var gooseUpToContext = func(ctx context.Context, db *sql.DB, dir string, version int64, opts ...goose.OptionsFunc) error {
	return goose.UpToContext(ctx, db, dir, version, opts...)
}

// RunMigrations applies the embedded schema, plus the seed migrations when
// Seed is set.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if !m.Seed {
		return gooseUpToContext(ctx, db, ".", SchemaVersion)
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager(seed bool) RepositoryManager {
	return &PostgresRepositoryManager{Seed: seed}
}

// OpenPostgres opens a pgx-backed *sql.DB and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
