package mailer

import (
	"fmt"

	"carecamps/models"

	gomail "gopkg.in/gomail.v2"
)

// Mailer relays transactional mail through the configured SMTP account
// (a gmail app password in the original deployment).
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	operator string
}

func New(host string, port int, user, appPassword, operator string) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, user, appPassword),
		from:     user,
		operator: operator,
	}
}

// SendContact relays a contact-form message to the operator inbox.
func (m *Mailer) SendContact(msg models.ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "New contact message"
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", m.operator)
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetHeader("Subject", fmt.Sprintf("[CareCamps] %s", subject))
	mail.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Body))

	return m.dialer.DialAndSend(mail)
}

// SendConfirmation tells a participant their registration was
// confirmed.
func (m *Mailer) SendConfirmation(to, campName string) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", to)
	mail.SetHeader("Subject", fmt.Sprintf("Your registration for %s is confirmed", campName))
	mail.SetBody("text/plain", fmt.Sprintf(
		"Good news! An organizer confirmed your registration for %s.\nSee you there.\n\n— CareCamps", campName))

	return m.dialer.DialAndSend(mail)
}
