// Package models defines the data types shared by the portal's storage and
// service layers.
package models

import "time"

// Account is a stored user record. Email is the normalized storage key.
// Salt is generated at registration and never changes; IV and Cipher are
// replaced together on every re-encryption (registration, password reset).
// The three fields are only ever written as a unit.
type Account struct {
	Email     string
	Salt      []byte
	IV        []byte
	Cipher    []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}
