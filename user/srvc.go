// Package user holds user accounts: registration, login and lookup.
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Repo is the persistence contract of the user service.
type Repo interface {
	Insert(ctx context.Context, row Row) error
	GetByUsername(ctx context.Context, username string) (Row, error)
	GetByUUID(ctx context.Context, userUUID uuid.UUID) (Row, error)
}

type UserSrvc struct {
	repo Repo
}

func NewUserSrvc(repo Repo) *UserSrvc {
	return &UserSrvc{repo: repo}
}

// GetByUUID returns the user with the given identity.
func (s *UserSrvc) GetByUUID(ctx context.Context, userUUID uuid.UUID) (User, error) {
	row, err := s.repo.GetByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return User{}, newErrUserNotFound()
		}
		return User{}, newErrInternalSE().SetDebug(err)
	}
	return row.toUser(), nil
}

// GetByUsername returns the user with the given username.
func (s *UserSrvc) GetByUsername(ctx context.Context, username string) (User, error) {
	row, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return User{}, newErrUserNotFound()
		}
		return User{}, newErrInternalSE().SetDebug(err)
	}
	return row.toUser(), nil
}
