package session

import (
	"fmt"
	"unicode"

	"github.com/dmitrijs2005/refundport/internal/common"
)

// PasswordPolicy is the configurable strength predicate evaluated before a
// password is accepted at registration or reset.
type PasswordPolicy struct {
	MinLength     int
	RequireLetter bool
	RequireDigit  bool
}

// DefaultPasswordPolicy mirrors the portal's registration form requirements.
var DefaultPasswordPolicy = PasswordPolicy{MinLength: 8, RequireLetter: true, RequireDigit: true}

// Validate returns an error wrapping common.ErrWeakCredential when the
// password does not satisfy the policy.
func (p PasswordPolicy) Validate(password []byte) error {
	runes := []rune(string(password))
	if len(runes) < p.MinLength {
		return fmt.Errorf("%w: at least %d characters required", common.ErrWeakCredential, p.MinLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if p.RequireLetter && !hasLetter {
		return fmt.Errorf("%w: a letter is required", common.ErrWeakCredential)
	}
	if p.RequireDigit && !hasDigit {
		return fmt.Errorf("%w: a digit is required", common.ErrWeakCredential)
	}
	return nil
}
