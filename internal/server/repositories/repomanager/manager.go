// Package repomanager wires repository constructors to a storage backend and
// owns schema migrations for the SQL-backed one.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/zenscore/internal/dbx"
	"github.com/dmitrijs2005/zenscore/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook. The in-memory implementation ignores the
// DBTX and migration arguments.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
