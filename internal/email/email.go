package email

import (
	"fmt"
	"net/smtp"
	"time"

	"eventhub-backend/internal/config"
)

type Sender struct {
	config *config.Config
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{config: cfg}
}

// SendEventShare mails an event invitation to the share recipient.
func (s *Sender) SendEventShare(toEmail, eventTitle string, eventDate time.Time, location string) error {
	// If SMTP credentials are not set, fallback to logging (or return error)
	if s.config.SMTP.Email == "" || s.config.SMTP.Password == "" {
		fmt.Printf("SMTP credentials not set. Mocking share email to %s for event %q\n", toEmail, eventTitle)
		return nil
	}

	from := s.config.SMTP.Email
	password := s.config.SMTP.Password
	host := s.config.SMTP.Host
	port := s.config.SMTP.Port
	address := host + ":" + port

	subject := fmt.Sprintf("Subject: You have been invited to %s\n", eventTitle)
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	body := fmt.Sprintf(`
		<html>
			<body>
				<h2>Someone shared an event with you!</h2>
				<p><strong>%s</strong></p>
				<p>%s at %s</p>
				<p>If you did not expect this, please ignore this email.</p>
			</body>
		</html>
	`, eventTitle, eventDate.Format("02/01/2006 15:04"), location)

	message := []byte(subject + mime + body)

	auth := smtp.PlainAuth("", from, password, host)

	err := smtp.SendMail(address, auth, from, []string{toEmail}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
