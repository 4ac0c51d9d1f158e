package models

import "time"

// Session is an authenticated session. Token is a signed JWT carrying the
// subject and expiry; ExpiresAt duplicates the token expiry for cheap local
// checks.
type Session struct {
	ID        string
	Subject   string
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
