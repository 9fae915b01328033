package profile

import "errors"

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrPasswordTooShort    = errors.New("password too short")
)
