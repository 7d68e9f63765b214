package user

import (
	"fmt"
	"net/http"

	"github.com/typingtutor/backend/srvcerror"
)

const ErrCodeUsernameTooShort = "username_too_short"

func newErrUsernameTooShort(minLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameTooShort,
		fmt.Sprintf("username must be at least %d characters long", minLength),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUsernameTooLong = "username_too_long"

func newErrUsernameTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameTooLong,
		"username is too long",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUsernameAlreadyExists = "username_exists"

func newErrUsernameExists() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameAlreadyExists,
		"username is already taken",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodePasswordTooShort = "password_too_short"

func newErrPasswordTooShort(minLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodePasswordTooShort,
		fmt.Sprintf("password must be at least %d characters long", minLength),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodePasswordTooLong = "password_too_long"

func newErrPasswordTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodePasswordTooLong,
		"password is too long",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodePasswordMismatch = "password_mismatch"

func newErrPasswordMismatch() *srvcerror.Error {
	return srvcerror.New(
		ErrCodePasswordMismatch,
		"passwords do not match",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNameTooLong = "name_too_long"

func newErrNameTooLong(maxLength int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNameTooLong,
		fmt.Sprintf("name must not exceed %d characters", maxLength),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNameEmpty = "name_empty"

func newErrNameEmpty() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNameEmpty,
		"first name and last name are required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUserNotFound = "user_not_found"

func newErrUserNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUserNotFound,
		"user not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeUsernameOrPasswordIncorrect = "username_or_password_incorrect"

func newErrUsernameOrPasswordIncorrect() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUsernameOrPasswordIncorrect,
		"username or password is incorrect",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
