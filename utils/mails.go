package utils

import (
	"errors"
	"fmt"
	"net"
	"net/smtp"
)

// SMTPMailer sends pre-rendered MIME messages through an SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPMailer(host string, port string, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

// Send delivers msg to every address of to and cc.
func (m *SMTPMailer) Send(to []string, cc []string, msg []byte) error {
	if m == nil || m.Host == "" {
		return errors.New("smtp mailer not configured")
	}
	rcpt := append(append([]string{}, to...), cc...)
	if len(rcpt) == 0 {
		return errors.New("no recipients")
	}

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	addr := net.JoinHostPort(m.Host, m.Port)
	if err := smtp.SendMail(addr, auth, m.From, rcpt, msg); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return nil
}
