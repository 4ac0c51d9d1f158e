package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/refundport/internal/portal/models"
)

// Submit collects a refund application and delivers it to the company inbox.
func (a *App) Submit(ctx context.Context) error {
	var app models.Application
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &app.FullName},
		{"Email", &app.Email},
		{"Phone (optional)", &app.Phone},
		{"Date of birth (YYYY-MM-DD)", &app.DateOfBirth},
		{"SSN", &app.SSN},
		{"Address", &app.Address},
		{"Tax year", &app.TaxYear},
		{"Filing status", &app.FilingStatus},
		{"Gross income", &app.GrossIncome},
		{"Tax withheld", &app.TaxWithheld},
		{"Number of dependents", &app.Dependents},
		{"Bank name", &app.BankName},
		{"Routing number", &app.RoutingNumber},
		{"Account number", &app.AccountNumber},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			printlnFn("error:", err.Error())
			return err
		}
		*f.dst = v
	}

	if err := a.manager.SubmitApplication(ctx, &app); err != nil {
		printlnFn("Submission failed:", err.Error())
		return err
	}

	printlnFn("Application submitted. You will be contacted at", app.Email)
	return nil
}
