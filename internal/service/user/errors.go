package user

import "errors"

var (
	ErrInvalidUsername = errors.New("username is required")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidRole     = errors.New("invalid role")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrUserNotFound       = errors.New("user not found")
)
