package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/zenscore/internal/common"
	"github.com/dmitrijs2005/zenscore/internal/server/models"
)

func TestInMemory_CreateAndLookup(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	byLogin, err := repo.GetUserByLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByLogin error: %v", err)
	}
	if byLogin.ID != created.ID {
		t.Fatalf("id mismatch: %d vs %d", byLogin.ID, created.ID)
	}

	byID, err := repo.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
	if byID.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", byID)
	}
}

func TestInMemory_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.GetUserByLogin(ctx, "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if _, err := repo.GetUserByID(ctx, 12345); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestInMemory_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h1"}); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	_, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h2"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestInMemory_ConcurrentCreate_ExactlyOneWins(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	const racers = 16
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, common.ErrorAlreadyExists):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}

	// the persisted record is unique
	u, err := repo.GetUserByLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByLogin error: %v", err)
	}
	if _, err := repo.GetUserByID(ctx, u.ID); err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
}
