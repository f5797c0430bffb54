package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/zenscore/internal/common"
	"github.com/dmitrijs2005/zenscore/internal/server/models"
)

// InMemoryRepository keeps accounts in process memory. The mutex guards the
// whole check-then-insert sequence so concurrent creates with the same
// username cannot both win. Used in tests and for DSN-less development runs.
type InMemoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	byLogin map[string]*models.User
	byID    map[int64]*models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID:  1,
		byLogin: make(map[string]*models.User),
		byID:    make(map[int64]*models.User),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byLogin[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := &models.User{
		ID:           r.nextID,
		UserName:     user.UserName,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now(),
	}
	r.nextID++

	r.byLogin[stored.UserName] = stored
	r.byID[stored.ID] = stored

	u := *stored
	return &u, nil
}

func (r *InMemoryRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byLogin[login]
	if !ok {
		return nil, common.ErrorNotFound
	}

	u := *stored
	return &u, nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	u := *stored
	return &u, nil
}
