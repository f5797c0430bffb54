// Package users contains the account repository: the persisted mapping from
// username to identity and password hash.
package users

import (
	"context"

	"github.com/dmitrijs2005/zenscore/internal/server/models"
)

// Repository is the credential store. Create must enforce username
// uniqueness even under concurrent calls: of two simultaneous creates with
// the same username exactly one succeeds, the other fails with
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
