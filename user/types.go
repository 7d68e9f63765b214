package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	UUID       uuid.UUID
	Username   string
	Firstname  *string
	Patronymic *string
	Lastname   *string
	// DisplayName is what leaderboards show; defaults to the full
	// name, falling back to the username.
	DisplayName string
	IsAdmin     bool
	CreatedAt   time.Time
}

// Row is the persisted shape of a user, bcrypt hash included. Only the
// repository and the login path see it.
type Row struct {
	UUID        uuid.UUID
	Username    string
	Firstname   string
	Patronymic  string
	Lastname    string
	DisplayName string
	BcryptPwd   string
	IsAdmin     bool
	CreatedAt   time.Time
}

func (r Row) toUser() User {
	firstname := r.Firstname
	patronymic := r.Patronymic
	lastname := r.Lastname
	return User{
		UUID:        r.UUID,
		Username:    r.Username,
		Firstname:   &firstname,
		Patronymic:  &patronymic,
		Lastname:    &lastname,
		DisplayName: r.DisplayName,
		IsAdmin:     r.IsAdmin,
		CreatedAt:   r.CreatedAt,
	}
}
