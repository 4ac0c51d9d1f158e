package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/refundport/internal/portal/session"
)

// Verify submits the emailed code for the pending challenge.
func (a *App) Verify(ctx context.Context) error {
	code, err := GetSimpleText(a.reader, "Enter the verification code from your email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.manager.VerifyChallenge(ctx, code); err != nil {
		printlnFn("Verification failed:", err.Error())
		return err
	}

	switch a.manager.State() {
	case session.StateAuthenticated:
		printlnFn("Logged in. Use 'submit' to file a refund application.")
	case session.StateResetAuthorized:
		printlnFn("Code accepted. Use 'newpassword' to set a new password.")
	default:
		printlnFn("Email verified. You can now log in.")
	}
	return nil
}
