package user

const (
	minUsernameLength = 2
	maxUsernameLength = 32
	minPasswordLength = 6
	maxPasswordLength = 1024
	maxNameLength     = 60
)

func validateUsername(username string) error {
	if len(username) < minUsernameLength {
		return newErrUsernameTooShort(minUsernameLength)
	}
	if len(username) > maxUsernameLength {
		return newErrUsernameTooLong()
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return newErrPasswordTooShort(minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return newErrPasswordTooLong()
	}
	return nil
}

func validateName(name string) error {
	if len(name) > maxNameLength {
		return newErrNameTooLong(maxNameLength)
	}
	return nil
}
