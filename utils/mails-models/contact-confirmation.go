package mailsmodels

import (
	"fmt"
	"time"
)

type ContactEmailData struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	Subject   string
	Message   string
	FormType  string
	CreatedAt time.Time
}

func ContactConfirmation(env Envelope, contact ContactEmailData) []byte {
	subject := "Confirmation of your contact request - Chiral Robotics"
	body := fmt.Sprintf(`
	<div style="background-color: #2563eb; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Thank you for your message!</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p>Hello %s,</p>
						<p>We have received your request about: "%s"</p>
						<p>We will get back to you as soon as possible.</p>
						<p>Your message:</p>
						<blockquote style="background-color: #f5f5f5; padding: 15px; border-left: 5px solid #2563eb;">
							%s
						</blockquote>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, esc(contact.Name, "there"), esc(contact.Subject, "General inquiry"), esc(contact.Message, ""))

	return compose(env, subject, body)
}

// ContactNotification forwards a contact form to sales.
func ContactNotification(env Envelope, contact ContactEmailData) []byte {
	subject := fmt.Sprintf("Website contact form: %s", nonEmpty(contact.Subject, "New inquiry"))
	body := fmt.Sprintf(`
	<div style="background-color: #2563eb; width: 100%%; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;">
			<tbody>
				<tr><td colspan="2"><h1 style="text-align:center">New %s request</h1></td></tr>
				<tr><td><strong>Name</strong></td><td>%s</td></tr>
				<tr><td><strong>Email</strong></td><td><a href="mailto:%s">%s</a></td></tr>
				<tr><td><strong>Phone</strong></td><td>%s</td></tr>
				<tr><td><strong>Company</strong></td><td>%s</td></tr>
				<tr><td><strong>Received</strong></td><td>%s</td></tr>
			</tbody>
		</table>
		<blockquote style="background-color: #f5f5f5; padding: 15px; border-left: 5px solid #2563eb;">
			%s
		</blockquote>
		<p style="color: #ffffff; font-size: 12px; text-align:center">Form %s</p>
	</div>
`,
		esc(contact.FormType, "contact"),
		esc(contact.Name, "-"),
		esc(contact.Email, ""), esc(contact.Email, ""),
		esc(contact.Phone, "Not provided"),
		esc(contact.Company, "-"),
		contact.CreatedAt.Format("2006-01-02 15:04:05"),
		esc(contact.Message, ""),
		esc(contact.ID, ""),
	)

	return compose(env, subject, body)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
