package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/refundport/internal/common"
)

// NewSessionToken mints an HS256 JWT for the authenticated subject with an
// explicit expiry. The token is the session's portable form; its lifetime is
// the session's lifetime.
func NewSessionToken(subject string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
	})

	return token.SignedString(secretKey)
}

// SubjectFromToken validates a session token and returns its subject.
// Expired or otherwise invalid tokens yield common.ErrInvalidCredentials.
func SubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrInvalidCredentials
	}

	return claims.Subject, nil
}
