package cli

import "context"

// Logout ends the authenticated session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.manager.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}
