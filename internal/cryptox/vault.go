// Package cryptox implements the credential vault: password-based key
// derivation (PBKDF2-SHA256) and authenticated encryption (AES-256-GCM) of
// account profiles. Encrypted bundles are self-describing: they carry their
// own salt and IV, so decryption needs nothing beyond the password.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrijs2005/refundport/internal/common"
)

const (
	// DefaultIterations is the PBKDF2 work factor. 100k iterations keeps
	// offline brute-forcing of a leaked bundle expensive.
	DefaultIterations = 100000

	// DefaultSaltBytes is the per-account salt width.
	DefaultSaltBytes = 16

	// DefaultIVBytes is the GCM nonce width.
	DefaultIVBytes = 12

	keyBytes = 32 // AES-256
)

// Bundle is the encrypted-at-rest form of an account profile. Salt is fixed
// for the lifetime of the account; IV and Cipher are regenerated on every
// re-encryption.
type Bundle struct {
	Salt   []byte `json:"salt"`
	IV     []byte `json:"iv"`
	Cipher []byte `json:"cipher"`
}

// Vault derives keys from passwords and seals/opens profile bundles.
// The zero value is not usable; construct with NewVault.
type Vault struct {
	iterations int
	saltBytes  int
	ivBytes    int
}

// NewVault constructs a Vault. Non-positive parameters fall back to the
// package defaults.
func NewVault(iterations, saltBytes, ivBytes int) *Vault {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if saltBytes <= 0 {
		saltBytes = DefaultSaltBytes
	}
	if ivBytes <= 0 {
		ivBytes = DefaultIVBytes
	}
	return &Vault{iterations: iterations, saltBytes: saltBytes, ivBytes: ivBytes}
}

// DeriveKey stretches password+salt into a 256-bit AES key. The same inputs
// always produce the same key; different salts produce unrelated keys.
func (v *Vault) DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, v.iterations, keyBytes, sha256.New)
}

// Encrypt serializes profile to JSON and seals it under a key derived from
// password and a fresh random salt, using AES-GCM with a fresh random IV.
func (v *Vault) Encrypt(password []byte, profile any) (*Bundle, error) {
	plaintext, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("profile serialization: %w", err)
	}

	salt := common.GenerateRandBytes(v.saltBytes)
	iv := common.GenerateRandBytes(v.ivBytes)

	key := v.DeriveKey(password, salt)
	defer common.WipeBytes(key)

	aesgcm, err := newGCM(key, v.ivBytes)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Salt:   salt,
		IV:     iv,
		Cipher: aesgcm.Seal(nil, iv, plaintext, nil),
	}, nil
}

// Decrypt re-derives the key from password and the bundle's salt, then opens
// the ciphertext into dst. A wrong password, a tampered ciphertext, and a
// malformed bundle all yield common.ErrInvalidCredentials; this is the only
// password-validation path, and the caller must not be able to tell the
// failure modes apart.
func (v *Vault) Decrypt(password []byte, b *Bundle, dst any) error {
	if b == nil || len(b.Salt) == 0 || len(b.IV) == 0 || len(b.Cipher) == 0 {
		return common.ErrInvalidCredentials
	}

	key := v.DeriveKey(password, b.Salt)
	defer common.WipeBytes(key)

	aesgcm, err := newGCM(key, len(b.IV))
	if err != nil {
		return common.ErrInvalidCredentials
	}

	plaintext, err := aesgcm.Open(nil, b.IV, b.Cipher, nil)
	if err != nil {
		return common.ErrInvalidCredentials
	}

	if err := json.Unmarshal(plaintext, dst); err != nil {
		return common.ErrInvalidCredentials
	}
	return nil
}

func newGCM(key []byte, nonceSize int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if nonceSize == DefaultIVBytes {
		return cipher.NewGCM(block)
	}
	return cipher.NewGCMWithNonceSize(block, nonceSize)
}
