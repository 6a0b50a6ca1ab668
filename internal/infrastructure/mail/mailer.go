// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	gomail "github.com/wneessen/go-mail"
)

const verificationSubject = "Sthaniya - Email Verification Code"

// Config captures the SMTP settings for the outbound mailer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer implements ports.Mailer over SMTP with STARTTLS.
type Mailer struct {
	cfg  Config
	tmpl *template.Template
}

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Welcome to Sthaniya!</h2>
  <p>Thank you for signing up. Please use the verification code below to complete your registration:</p>
  <div style="background-color: #f4f4f4; padding: 20px; text-align: center; margin: 20px 0;">
    <h1 style="color: #007bff; font-size: 32px; letter-spacing: 5px; margin: 0;">{{.Code}}</h1>
  </div>
  <p>This code will expire in 10 minutes.</p>
  <p>If you didn't request this verification, please ignore this email.</p>
  <hr style="margin-top: 30px;">
  <p style="color: #666; font-size: 12px;">This is an automated message from Sthaniya. Please do not reply.</p>
</div>
`))

func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, tmpl: verificationTmpl}
}

// SendVerificationCode delivers the code to the recipient. No retries: a
// failed send is surfaced to the caller and the user requests a new code.
func (m *Mailer) SendVerificationCode(ctx context.Context, to, code string) error {
	var body bytes.Buffer
	if err := m.tmpl.Execute(&body, struct{ Code string }{Code: code}); err != nil {
		return fmt.Errorf("render verification mail: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("verification mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("verification mail to: %w", err)
	}
	msg.Subject(verificationSubject)
	msg.SetBodyString(gomail.TypeTextHTML, body.String())

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}
