package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserParams struct {
	Username   string
	Firstname  string
	Patronymic string
	Lastname   string
	Password   string
	Password2  string
}

func (s *UserSrvc) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Firstname = strings.TrimSpace(p.Firstname)
	p.Patronymic = strings.TrimSpace(p.Patronymic)
	p.Lastname = strings.TrimSpace(p.Lastname)

	if err := validateUsername(p.Username); err != nil {
		return User{}, err
	}
	if p.Firstname == "" || p.Lastname == "" {
		return User{}, newErrNameEmpty()
	}
	for _, name := range []string{p.Firstname, p.Patronymic, p.Lastname} {
		if err := validateName(name); err != nil {
			return User{}, err
		}
	}
	if p.Password != p.Password2 {
		return User{}, newErrPasswordMismatch()
	}
	if err := validatePassword(p.Password); err != nil {
		return User{}, err
	}

	_, err := s.repo.GetByUsername(ctx, p.Username)
	if err == nil {
		return User{}, newErrUsernameExists()
	}
	if !errors.Is(err, ErrRowNotFound) {
		return User{}, newErrInternalSE().SetDebug(err)
	}

	bcryptPwd, err := bcrypt.GenerateFromPassword(
		[]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, newErrInternalSE().SetDebug(err)
	}

	displayName := strings.TrimSpace(strings.Join(
		[]string{p.Firstname, p.Patronymic, p.Lastname}, " "))
	displayName = strings.Join(strings.Fields(displayName), " ")
	if displayName == "" {
		displayName = p.Username
	}

	row := Row{
		UUID:        uuid.New(),
		Username:    p.Username,
		Firstname:   p.Firstname,
		Patronymic:  p.Patronymic,
		Lastname:    p.Lastname,
		DisplayName: displayName,
		BcryptPwd:   string(bcryptPwd),
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Insert(ctx, row); err != nil {
		if errors.Is(err, ErrRowExists) {
			return User{}, newErrUsernameExists()
		}
		return User{}, newErrInternalSE().SetDebug(err)
	}

	return row.toUser(), nil
}
