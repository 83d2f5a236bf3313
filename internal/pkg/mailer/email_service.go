// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendFeatureReceipt(toEmail, resourceName string, amount int64, featuredTo time.Time, extended bool) error
	SendUnfeatureNotice(toEmail, resourceName string, endedAt time.Time) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string // Added to construct links
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	// Get Frontend URL from ENV or default to a safe placeholder
	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendFeatureReceipt(toEmail, resourceName string, amount int64, featuredTo time.Time, extended bool) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Listing Is Now Featured")

	headline := "Your listing is now featured!"
	if extended {
		headline = "Your featured placement has been extended!"
	}

	dashboardLink := fmt.Sprintf("%s/vendor/featured", s.frontendURL)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p><strong>%s</strong> will stay featured until <strong>%s</strong>.</p>
			<p>Amount paid: &#8358;%d</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">View Placement</a>
			<p>Thank you for promoting with us.</p>
		</div>
	`, headline, resourceName, featuredTo.Format("January 2, 2006"), amount, dashboardLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Receipt sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendUnfeatureNotice(toEmail, resourceName string, endedAt time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Featured Placement Has Ended")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Placement ended</h2>
			<p>The featured placement for <strong>%s</strong> ended on <strong>%s</strong>.</p>
			<p>If you believe this is a mistake, please contact support.</p>
		</div>
	`, resourceName, endedAt.Format("January 2, 2006"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send unfeature notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Unfeature notice sent to %s\n", toEmail)
	return nil
}
