package user

import (
	"errors"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")
