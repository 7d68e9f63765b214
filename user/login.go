package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type LoginParams struct {
	Username string
	Password string
}

func (s *UserSrvc) Login(ctx context.Context, p LoginParams) (User, error) {
	row, err := s.repo.GetByUsername(ctx, p.Username)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return User{}, newErrUsernameOrPasswordIncorrect()
		}
		return User{}, newErrInternalSE().SetDebug(err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(row.BcryptPwd), []byte(p.Password))
	if err != nil {
		return User{}, newErrUsernameOrPasswordIncorrect()
	}

	return row.toUser(), nil
}
