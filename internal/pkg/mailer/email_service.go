package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationNotice(toEmail, ticketId, category, level, slaDeadline, requestText string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendEscalationNotice(toEmail, ticketId, category, level, slaDeadline, requestText string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[Escalation] Ticket %s requires attention", ticketId))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Escalated Support Request</h2>
			<p>A support request has been escalated to <strong>%s</strong>.</p>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px 4px 0;"><strong>Ticket</strong></td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;"><strong>Category</strong></td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;"><strong>Respond by</strong></td><td>%s</td></tr>
			</table>
			<p><strong>Original request:</strong></p>
			<blockquote style="border-left: 3px solid #007BFF; padding-left: 10px; color: #555;">%s</blockquote>
		</div>
	`, level, ticketId, category, slaDeadline, requestText)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation notice sent to %s\n", toEmail)
	return nil
}
