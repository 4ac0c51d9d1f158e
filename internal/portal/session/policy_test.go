package session

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/refundport/internal/common"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	tests := []struct {
		name     string
		policy   PasswordPolicy
		password string
		wantErr  bool
	}{
		{"ok", DefaultPasswordPolicy, "abcdef12", false},
		{"too short", DefaultPasswordPolicy, "ab1", true},
		{"no digit", DefaultPasswordPolicy, "abcdefgh", true},
		{"no letter", DefaultPasswordPolicy, "12345678", true},
		{"unicode letters count", DefaultPasswordPolicy, "pässwörd1", false},
		{"relaxed policy", PasswordPolicy{MinLength: 4}, "aaaa", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate([]byte(tt.password))
			if tt.wantErr {
				if !errors.Is(err, common.ErrWeakCredential) {
					t.Errorf("want ErrWeakCredential, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
