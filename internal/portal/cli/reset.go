package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/refundport/internal/common"
)

// Reset starts a password reset for an existing account.
func (a *App) Reset(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.manager.RequestPasswordReset(ctx, email); err != nil {
		printlnFn("Password reset failed:", err.Error())
		return err
	}

	printlnFn("Verification code sent. Use 'verify' to enter it.")
	return nil
}

// NewPassword finishes a verified password reset. The account record is
// rebuilt from scratch, so the profile is collected again.
func (a *App) NewPassword(ctx context.Context) error {
	password, err := GetPassword(os.Stdout, "Enter new password (min 8 chars, letters and digits)")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	defer common.WipeBytes(password)

	printlnFn("Your profile is stored encrypted under your password, please re-enter it.")
	profile, err := a.getProfile()
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.manager.CompletePasswordReset(ctx, password, profile); err != nil {
		printlnFn("Password reset failed:", err.Error())
		return err
	}

	printlnFn("Password updated. You can now log in.")
	return nil
}
