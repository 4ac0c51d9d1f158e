package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/dmitrijs2005/refundport/internal/portal/models"
)

// VerificationEmail renders the subject and HTML body of a verification-code
// message. The purpose caption ("Registration", "Login", "Password Reset")
// tells the recipient which flow requested the code.
func VerificationEmail(purpose, code string) (subject, body string) {
	subject = purpose + " Code"
	body = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; padding: 25px; border: 1px solid #eee; border-radius: 10px; max-width: 450px; margin: auto;">
    <h2 style="color: #002868; text-align: center;">%s Verification</h2>
    <p style="text-align: center;">Your verification code is:</p>
    <div style="background: #f4f4f4; padding: 15px; text-align: center; border-radius: 5px; margin: 20px 0;">
        <h1 style="letter-spacing: 10px; color: #d35400; margin: 0; font-size: 32px;">%s</h1>
    </div>
    <p style="font-size: 12px; color: #777; text-align: center;">This code will expire in 30 minutes. If you didn't request it, please ignore this email.</p>
</div>`,
		html.EscapeString(purpose), html.EscapeString(code))
	return subject, body
}

// ApplicationEmail renders a submitted refund application as an HTML table
// for the company inbox. The bank account number arrives pre-masked from
// Application.Fields.
func ApplicationEmail(app *models.Application) (subject, body string) {
	var rows strings.Builder
	for _, kv := range app.Fields() {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:8px; border:1px solid #ddd;"><b>%s</b></td><td style="padding:8px; border:1px solid #ddd;">%s</td></tr>`,
			html.EscapeString(kv[0]), html.EscapeString(kv[1])))
	}

	subject = "NEW TAX APPLICATION"
	body = fmt.Sprintf(
		`<h2>New Tax Application</h2><table style="width:100%%; border-collapse:collapse;">%s</table>`,
		rows.String())
	return subject, body
}
