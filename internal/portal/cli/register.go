package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/refundport/internal/common"
	"github.com/dmitrijs2005/refundport/internal/portal/models"
)

// Register collects the registration form and starts the email challenge.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password (min 8 chars, letters and digits)")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	defer common.WipeBytes(password)

	profile, err := a.getProfile()
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.manager.Register(ctx, email, password, profile); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Verification code sent. Use 'verify' to enter it.")
	return nil
}

// getProfile prompts for the PII stored inside the encrypted account bundle.
func (a *App) getProfile() (*models.Profile, error) {
	var p models.Profile
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &p.FullName},
		{"Date of birth (YYYY-MM-DD)", &p.DateOfBirth},
		{"Phone (optional)", &p.Phone},
		{"SSN", &p.SSN},
		{"Address", &p.Address},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return &p, nil
}
