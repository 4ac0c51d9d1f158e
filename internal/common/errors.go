// Package common defines shared constants and sentinel errors used across
// the refund portal components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Account lifecycle errors.
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")

	// Credential errors. ErrInvalidCredentials covers both a wrong password
	// and a corrupt stored bundle so callers cannot tell the two apart.
	ErrWeakCredential     = errors.New("password does not meet policy")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Challenge / verification errors.
	ErrInvalidCode = errors.New("invalid verification code")

	// Delivery and state-machine errors.
	ErrDeliveryFailed = errors.New("notification delivery failed")
	ErrInvalidState   = errors.New("operation not permitted in current state")

	// Storage backend failures (I/O level, not business outcomes).
	ErrStorageUnavailable = errors.New("storage unavailable")
)
