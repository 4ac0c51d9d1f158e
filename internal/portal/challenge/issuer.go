// Package challenge issues and redeems one-time verification codes.
//
// Semantics shared by all backends:
//   - at most one active code per subject; issuing a new code permanently
//     invalidates the previous one, even if it was never redeemed;
//   - redemption is single-use: a successful redeem consumes the code;
//   - codes expire after a configurable TTL, and an expired code fails
//     redemption exactly like a mismatch.
package challenge

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// DefaultCodeLength is the number of digits in a verification code.
const DefaultCodeLength = 6

// DefaultTTL matches the validity promised in the verification email.
const DefaultTTL = 30 * time.Minute

// Issuer manages one-time verification codes keyed by subject (the email
// address the code was sent to).
type Issuer interface {
	// Issue generates and stores a fresh code for subject, superseding any
	// previous one.
	Issue(ctx context.Context, subject string) (string, error)

	// Redeem trims suppliedCode and compares it to the stored code. On match
	// the code is consumed and true is returned. On mismatch, absence, or
	// expiry it returns false and leaves any stored code untouched so the
	// user can retry.
	Redeem(ctx context.Context, subject, suppliedCode string) (bool, error)
}

// GenerateCode draws a uniformly random numeric code of the given length
// with a non-zero leading digit, i.e. for length 6 the full 100000–999999
// range.
func GenerateCode(length int) (string, error) {
	if length < 1 {
		length = DefaultCodeLength
	}

	// codes span [10^(n-1), 10^n)
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("code generation: %w", err)
	}

	return n.Add(n, low).String(), nil
}
