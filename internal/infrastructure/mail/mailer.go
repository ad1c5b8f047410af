// Package mail sends the transactional emails for the identity workflows
// over SMTP using go-mail. Bodies are rendered from embedded HTML templates.
package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/tasko-app/tasko-api/internal/api/metrics"
	"github.com/tasko-app/tasko-api/internal/core/domain"
)

// Config captures the SMTP settings for the mailer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      bool
	// From is the sender address, optionally with a display name.
	From string
	// BaseURL is embedded in emails that link back to the application.
	BaseURL string
}

// Mailer implements ports.Mailer over an SMTP connection.
type Mailer struct {
	cfg    Config
	client *mail.Client
	log    zerolog.Logger
}

// NewMailer builds the SMTP client. Authentication is only configured when
// credentials are present, so a local debug server needs no setup.
func NewMailer(cfg Config, log zerolog.Logger) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(30 * time.Second),
	}

	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	if cfg.TLS {
		opts = append(opts,
			mail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}),
			mail.WithTLSPolicy(mail.TLSMandatory),
		)
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail client: %w", err)
	}

	return &Mailer{cfg: cfg, client: client, log: log}, nil
}

type templateData struct {
	FirstName string
	Email     string
	OTP       string
	FullName  string
	Initials  string
	JoinDate  string
	LoginURL  string
	Year      int
}

// SendSignupOTP delivers a verification code for a new registration.
func (m *Mailer) SendSignupOTP(ctx context.Context, email, firstName, otp string) error {
	return m.send(ctx, "signup_otp", email, "Your Tasko Verification Code",
		signupOTPTemplate, templateData{
			FirstName: orThere(firstName),
			Email:     email,
			OTP:       otp,
			Year:      time.Now().Year(),
		})
}

// SendOTPConfirmed confirms that an email address was verified.
func (m *Mailer) SendOTPConfirmed(ctx context.Context, email, firstName string) error {
	return m.send(ctx, "otp_confirmed", email, "Tasko: Email Verified Successfully",
		otpConfirmedTemplate, templateData{
			FirstName: orThere(firstName),
			Email:     email,
			Year:      time.Now().Year(),
		})
}

// SendWelcome greets a freshly created account.
func (m *Mailer) SendWelcome(ctx context.Context, user *domain.User) error {
	return m.send(ctx, "welcome", user.Email, "Welcome to Tasko! Your Account is Ready 🎉",
		welcomeTemplate, templateData{
			FirstName: orThere(user.FirstName),
			Email:     user.Email,
			FullName:  user.FullName(),
			Initials:  user.Initials(),
			JoinDate:  user.DateJoined.Format("January 2, 2006"),
			Year:      time.Now().Year(),
		})
}

// SendResetOTP delivers a password reset code.
func (m *Mailer) SendResetOTP(ctx context.Context, email, firstName, otp string) error {
	return m.send(ctx, "reset_otp", email, "Reset Your Tasko Password",
		resetOTPTemplate, templateData{
			FirstName: orThere(firstName),
			Email:     email,
			OTP:       otp,
			Year:      time.Now().Year(),
		})
}

// SendResetSuccess confirms that a password was changed.
func (m *Mailer) SendResetSuccess(ctx context.Context, email, firstName string) error {
	return m.send(ctx, "reset_success", email, "Your Tasko Password Has Been Changed",
		resetSuccessTemplate, templateData{
			FirstName: orThere(firstName),
			Email:     email,
			LoginURL:  m.cfg.BaseURL + "/login",
			Year:      time.Now().Year(),
		})
}

func (m *Mailer) send(ctx context.Context, kind, to, subject string, tmpl *template.Template, data templateData) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		metrics.EmailErrorsTotal.WithLabelValues(kind).Inc()
		return fmt.Errorf("render %s email: %w", kind, err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		metrics.EmailErrorsTotal.WithLabelValues(kind).Inc()
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		metrics.EmailErrorsTotal.WithLabelValues(kind).Inc()
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		metrics.EmailErrorsTotal.WithLabelValues(kind).Inc()
		m.log.Error().Err(err).Str("kind", kind).Str("to", to).Msg("email delivery failed")
		return fmt.Errorf("send %s email: %w", kind, err)
	}

	metrics.EmailsSentTotal.WithLabelValues(kind).Inc()
	m.log.Info().Str("kind", kind).Str("to", to).Msg("email sent")
	return nil
}

func orThere(firstName string) string {
	if firstName == "" {
		return "there"
	}
	return firstName
}
