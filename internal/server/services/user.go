// Package services contains server-side business logic. This file implements
// UserService, which handles account registration, token issuance, and the
// single authentication chokepoint all protected operations go through.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/zenscore/internal/common"
	"github.com/dmitrijs2005/zenscore/internal/dbx"
	"github.com/dmitrijs2005/zenscore/internal/server/auth"
	"github.com/dmitrijs2005/zenscore/internal/server/config"
	"github.com/dmitrijs2005/zenscore/internal/server/models"
	"github.com/dmitrijs2005/zenscore/internal/server/repositories/repomanager"
)

// UserService provides account operations:
// - Register: create users
// - GetByID: resolve an account
// - Authenticate: resolve credentials (token or username/password) to a user
// - IssueToken: mint a signed expiring token for an authenticated user
type UserService struct {
	db                    dbx.DBTX
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// TokenValidity reports the configured token lifetime.
func (s *UserService) TokenValidity() time.Duration {
	return s.tokenValidityDuration
}

// Register creates a new user with the given username and password. Empty
// fields fail with ErrorValidation, a taken username with ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// GetByID resolves an account by its id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetUserByID(ctx, id)
}

// IssueToken mints a signed token for the user with the configured lifetime.
func (s *UserService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate resolves the supplied credentials to a user.
//
// The identifier is first treated as a token: if it verifies, the encoded
// account is resolved and the secret is ignored, token possession alone
// authenticates. Otherwise the identifier is treated as a username and the
// secret is verified against the stored hash. Every credential failure
// (missing, invalid or expired token, unknown username, wrong password)
// collapses to the same ErrorUnauthorized so callers cannot tell which
// branch or field failed. Store faults surface as ErrorInternal.
func (s *UserService) Authenticate(ctx context.Context, identifier, secret string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if userID, err := auth.GetUserIDFromToken(identifier, s.jwtSecret); err == nil {
		user, err := repo.GetUserByID(ctx, userID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInternal
		}
		// token for a vanished account falls through to the password path
	}

	user, err := repo.GetUserByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(secret, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}
