package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/example/livemarket/internal/config"
)

// Mailer sends transactional emails over SMTP. When no SMTP host is
// configured it logs the message instead so local development works
// without a mail server.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewMailer constructs a Mailer from application config.
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

// Send delivers a single HTML email.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m.host == "" {
		log.Printf("[Mail] SMTP not configured, logging instead\nTo: %s\nSubject: %s\n%s", to, subject, htmlBody)
		return nil
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n%s\r\n%s", m.from, to, subject, mime, htmlBody))

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		log.Printf("[Mail] Failed to send to %s: %v", to, err)
		return err
	}

	return nil
}

// SendOTPEmail sends the registration verification code.
func (m *Mailer) SendOTPEmail(to, firstName, code string) error {
	subject := "Your Live Market Verification Code"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Thank you for signing up! Please use the verification code below to complete your registration:</p>
<h1 style="letter-spacing:8px">%s</h1>
<p>This code will expire in 10 minutes.</p>
<p>If you didn't request this code, please ignore this email.</p>`, firstName, code)

	return m.Send(to, subject, body)
}

// SendPasswordResetEmail sends the password reset code.
func (m *Mailer) SendPasswordResetEmail(to, firstName, code string) error {
	subject := "Your Live Market Password Reset Code"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Use the code below to reset your password:</p>
<h1 style="letter-spacing:8px">%s</h1>
<p>This code will expire in 10 minutes. If you didn't request a reset, you can ignore this email.</p>`, firstName, code)

	return m.Send(to, subject, body)
}

// SendApprovalEmail tells a merchant their account has been activated.
func (m *Mailer) SendApprovalEmail(to, firstName, businessName string) error {
	subject := "Your Live Market Account Is Approved"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Good news! <b>%s</b> has been approved and your account is now active.</p>
<p>You can log in and start setting up your shop.</p>`, firstName, businessName)

	return m.Send(to, subject, body)
}
