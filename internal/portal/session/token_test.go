package session

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/refundport/internal/common"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	secret := []byte("secret")

	token, err := NewSessionToken("alice@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	subject, err := SubjectFromToken(token, secret)
	if err != nil {
		t.Fatalf("SubjectFromToken: %v", err)
	}
	if subject != "alice@example.com" {
		t.Errorf("subject = %q", subject)
	}
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := NewSessionToken("alice@example.com", []byte("secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	if _, err := SubjectFromToken(token, []byte("other")); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := NewSessionToken("alice@example.com", []byte("secret"), -time.Minute)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	if _, err := SubjectFromToken(token, []byte("secret")); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionToken_Garbage(t *testing.T) {
	if _, err := SubjectFromToken("not-a-token", []byte("secret")); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}
