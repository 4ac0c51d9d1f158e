package models

// Profile holds the PII collected at registration. It is stored only inside
// the encrypted account bundle, never in plaintext.
type Profile struct {
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone,omitempty"`
	SSN         string `json:"ssn,omitempty"`
	Address     string `json:"address,omitempty"`
}
