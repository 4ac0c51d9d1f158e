package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/refundport/internal/common"
)

// Login verifies the password against the encrypted account and starts the
// login challenge.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	defer common.WipeBytes(password)

	if err := a.manager.Login(ctx, email, password); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Verification code sent. Use 'verify' to enter it.")
	return nil
}
