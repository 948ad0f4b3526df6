package model

import "errors"

var (
	// Credential/token related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// User related errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")

	// Post related errors
	ErrPostNotFound = errors.New("post not found")

	// Tag related errors
	ErrTagNotFound  = errors.New("tag not found")
	ErrTagNameTaken = errors.New("tag name already exists")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
