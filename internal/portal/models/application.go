package models

import "strings"

// Application is the refund application form submitted after authentication.
type Application struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	DateOfBirth   string `json:"date_of_birth"`
	SSN           string `json:"ssn"`
	Address       string `json:"address"`
	TaxYear       string `json:"tax_year"`
	FilingStatus  string `json:"filing_status"`
	GrossIncome   string `json:"gross_income"`
	TaxWithheld   string `json:"tax_withheld"`
	Dependents    string `json:"dependents"`
	BankName      string `json:"bank_name"`
	RoutingNumber string `json:"routing_number"`
	AccountNumber string `json:"account_number"`
}

// MaskedAccountNumber returns the bank account number reduced to its last
// four digits, the only form that ever leaves the process.
func (a *Application) MaskedAccountNumber() string {
	n := a.AccountNumber
	if len(n) <= 4 {
		return "****"
	}
	return "****" + n[len(n)-4:]
}

// Fields returns the application as ordered label/value pairs for rendering.
// The account number is always masked.
func (a *Application) Fields() [][2]string {
	return [][2]string{
		{"Full Name", a.FullName},
		{"Email", a.Email},
		{"Phone", orNA(a.Phone)},
		{"Date of Birth", a.DateOfBirth},
		{"SSN", a.SSN},
		{"Address", a.Address},
		{"Tax Year", a.TaxYear},
		{"Filing Status", a.FilingStatus},
		{"Gross Income", a.GrossIncome},
		{"Tax Withheld", a.TaxWithheld},
		{"Dependents", a.Dependents},
		{"Bank Name", a.BankName},
		{"Routing Number", a.RoutingNumber},
		{"Account Number", a.MaskedAccountNumber()},
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
