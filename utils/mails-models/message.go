package mailsmodels

import (
	"html"
	"strings"
)

const mime = "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"

// Envelope holds the headers of a rendered mail.
type Envelope struct {
	From string
	To   []string
	Cc   []string
}

func compose(env Envelope, subject, body string) []byte {
	var b strings.Builder
	if env.From != "" {
		b.WriteString("From: " + env.From + "\r\n")
	}
	if len(env.To) > 0 {
		b.WriteString("To: " + strings.Join(env.To, ", ") + "\r\n")
	}
	if len(env.Cc) > 0 {
		b.WriteString("Cc: " + strings.Join(env.Cc, ", ") + "\r\n")
	}
	b.WriteString("Subject: " + strings.NewReplacer("\r", "", "\n", "").Replace(subject) + "\r\n")
	b.WriteString(mime)
	b.WriteString(body)
	return []byte(b.String())
}

// esc escapes a value for the HTML body, substituting fallback when empty.
func esc(s string, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return html.EscapeString(s)
}
