package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// ErrEmailServiceNotConfigured is returned when no SMTP host is set.
var ErrEmailServiceNotConfigured = errors.New("email service not configured")

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// dialer is the part of gomail.Dialer the service uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPEmailService sends the daily report and the email notification channel.
type SMTPEmailService struct {
	config SMTPConfig
	dialer dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// SendHTML mails one HTML document to every recipient in a single message.
func (s *SMTPEmailService) SendHTML(ctx context.Context, to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}
	m := s.newMessage(subject)
	m.SetHeader("To", to...)
	m.SetBody("text/html", htmlBody)
	m.AddAlternative("text/plain", plainFromHTML(htmlBody))
	return s.send(ctx, m)
}

// Send delivers a plain-text notification and returns the generated Message-ID.
func (s *SMTPEmailService) Send(ctx context.Context, to, subject, body string) (string, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.domain())
	m := s.newMessage(subject)
	m.SetHeader("To", to)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/plain", body)
	if err := s.send(ctx, m); err != nil {
		return "", err
	}
	return messageID, nil
}

func (s *SMTPEmailService) newMessage(subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("Subject", subject)
	return m
}

func (s *SMTPEmailService) send(ctx context.Context, m *gomail.Message) error {
	if s.config.Host == "" {
		return ErrEmailServiceNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPEmailService) domain() string {
	if _, host, ok := strings.Cut(s.config.FromAddress, "@"); ok && host != "" {
		return host
	}
	return "localhost"
}

// plainFromHTML is a rough text fallback for clients that refuse HTML.
func plainFromHTML(html string) string {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
