package admin

import "errors"

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrUnknownHospital    = errors.New("admin hospital does not exist")
)
