// Package common defines shared sentinel errors used across the chatkeeper
// layers. Callers should use errors.Is to match these values. The error text
// is display-ready: the CLI prints it to the user verbatim.
package common

import "errors"

var (
	// Session manager errors.
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoActiveSession    = errors.New("no active session")
	ErrAccountNotFound    = errors.New("account not found")

	// Storage-level error. The store wrapper logs it and degrades to an
	// empty read or a dropped write; it never reaches the UI.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
