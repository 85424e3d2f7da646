package user

import "errors"

var (
	ErrEmailTaken         = errors.New("a profile with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrAlreadyHost        = errors.New("profile is already a host")
	ErrWeakPassword       = errors.New("password must mix letters and digits")
)
