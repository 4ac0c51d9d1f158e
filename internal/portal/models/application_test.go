package models

import "testing"

func TestMaskedAccountNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123456789", "****6789"},
		{"12345", "****2345"},
		{"1234", "****"},
		{"", "****"},
	}
	for _, tc := range tests {
		a := &Application{AccountNumber: tc.in}
		if got := a.MaskedAccountNumber(); got != tc.want {
			t.Errorf("MaskedAccountNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFields_NeverExposesFullAccountNumber(t *testing.T) {
	a := &Application{AccountNumber: "987654321", Phone: ""}
	for _, kv := range a.Fields() {
		if kv[1] == "987654321" {
			t.Fatalf("full account number leaked through Fields()")
		}
		if kv[0] == "Phone" && kv[1] != "N/A" {
			t.Errorf("empty phone should render as N/A, got %q", kv[1])
		}
	}
}
