package app

import "errors"

var (
	// ErrEmptyContent is returned when neither text nor extracted link content is usable.
	ErrEmptyContent = errors.New("no article content found")

	ErrArticleNotFound = errors.New("article not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials deliberately does not distinguish unknown email
	// from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrResetDisabled gates the dev-only reset flow that returns the token
	// in the HTTP response instead of delivering it out of band.
	ErrResetDisabled = errors.New("password reset is only available in dev mode")
)
