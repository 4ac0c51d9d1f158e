package common

import (
	"crypto/rand"
	"strings"
)

// GenerateRandBytes returns size cryptographically random bytes. It panics if
// the system random source fails, which is not a recoverable condition for
// code that mints salts and IVs.
func GenerateRandBytes(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeBytes overwrites the contents of b with zeros. Useful for removing
// passwords and derived keys from memory after use. A nil slice is a no-op.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NormalizeEmail canonicalizes an email address for use as a storage key:
// surrounding whitespace is trimmed and the address is lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
