package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/zenscore/internal/dbx"
	"github.com/dmitrijs2005/zenscore/internal/server/repositories/users"
)

// InMemoryRepositoryManager vends the process-memory repositories. The same
// repository instance is returned on every call so all callers share state.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
