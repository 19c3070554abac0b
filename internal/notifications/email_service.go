package notifications

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// EmailService sends notification emails
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// SMTPEmailService sends mail through an SMTP relay
type SMTPEmailService struct {
	config *SMTPConfig
	client *mail.Client
}

func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client, err := mail.NewClient(config.Host,
		mail.WithPort(config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(config.Username),
		mail.WithPassword(config.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPEmailService{
		config: config,
		client: client,
	}, nil
}

func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [SMTP] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)

	htmlBody, textBody := generateContent(notification)
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.config.FromName, s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 [SMTP] Email sent successfully to %s", to)
	return nil
}

// generateContent renders the email body for a notification type
func generateContent(notification *EmailNotification) (string, string) {
	data := notification.TemplateData
	name := notification.RecipientName

	switch notification.Type {
	case NotificationTypeBookingConfirmed:
		htmlBody := fmt.Sprintf(`
			<h2>Booking Confirmed</h2>
			<p>Hi %s,</p>
			<p>Your booking for <strong>%v</strong> is confirmed.</p>
			<p>Reference: <strong>%v</strong></p>
			<p>Seats: %v</p>
			<p>Total Amount: ₹%v</p>
			<p>See you at the movies,<br>CineBook Team</p>
		`, name, data["movie_title"], data["reference"], data["seats"], data["total_amount"])

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour booking for %v is confirmed.\nReference: %v\nSeats: %v\nTotal Amount: ₹%v\n\nSee you at the movies,\nCineBook Team",
			name, data["movie_title"], data["reference"], data["seats"], data["total_amount"])

		return htmlBody, textBody

	case NotificationTypeBookingCancelled:
		htmlBody := fmt.Sprintf(`
			<h2>Booking Cancelled</h2>
			<p>Hi %s,</p>
			<p>Your booking <strong>%v</strong> for <strong>%v</strong> has been cancelled.</p>
			<p>The seats have been released.</p>
			<p>Best regards,<br>CineBook Team</p>
		`, name, data["reference"], data["movie_title"])

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour booking %v for %v has been cancelled.\nThe seats have been released.\n\nBest regards,\nCineBook Team",
			name, data["reference"], data["movie_title"])

		return htmlBody, textBody

	case NotificationTypeShowtimeReminder:
		htmlBody := fmt.Sprintf(`
			<h2>Your movie starts soon</h2>
			<p>Hi %s,</p>
			<p><strong>%v</strong> starts at <strong>%v</strong>.</p>
			<p>Reference: %v, Seats: %v</p>
			<p>Enjoy the show,<br>CineBook Team</p>
		`, name, data["movie_title"], data["start_time"], data["reference"], data["seats"])

		textBody := fmt.Sprintf(
			"Hi %s,\n\n%v starts at %v.\nReference: %v, Seats: %v\n\nEnjoy the show,\nCineBook Team",
			name, data["movie_title"], data["start_time"], data["reference"], data["seats"])

		return htmlBody, textBody

	default:
		htmlBody := fmt.Sprintf(`
			<h2>%s</h2>
			<p>Hi %s,</p>
			<p>This is a notification from CineBook.</p>
			<p>Best regards,<br>CineBook Team</p>
		`, notification.Subject, name)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nThis is a notification from CineBook.\n\nBest regards,\nCineBook Team", name)

		return htmlBody, textBody
	}
}

// MockEmailService logs instead of sending; used in development
type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [MOCK] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)
	return nil
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [MOCK] To: %s, Subject: %s", to, subject)
	log.Printf("📧 [MOCK] Body: %s", strings.TrimSpace(textBody))
	return nil
}
