package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendCredentialsEmail(toEmail, toName, userName, password string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendCredentialsEmail delivers the generated initial password to a newly
// registered user. The plaintext password travels only through this channel.
func (s *EmailServiceImpl) SendCredentialsEmail(toEmail, toName, userName, password string) error {
	// If SMTP is not configured, log the credentials (for development only)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("userName", userName).
			Str("password", password).
			Msg("SMTP credentials not configured - credentials email not sent. Use the password above for testing.")
		return nil
	}

	subject := "Your Examination Portal Account"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to the Examination Portal</h2>
				<p>Hello %s,</p>
				<p>An account has been created for you. Sign in with the credentials below and change your password after your first login.</p>
				<p>Username: <strong>%s</strong><br>Password: <strong>%s</strong></p>
				<p>If you were not expecting this account, please contact the examinations office.</p>
				<p>Best regards,<br>Examinations Office</p>
			</div>
		</body>
		</html>
	`, toName, userName, password)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email through the configured SMTP server
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, body string) error {
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}

	msg := []byte("From: " + from + "\r\n" +
		"To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + body)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
