package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown users and wrong
	// passwords so responses don't leak which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken indicates a signup with an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidToken indicates an expired, malformed, or tampered token.
	ErrInvalidToken = errors.New("invalid token")
)
