package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Receipt is what a subscriber sees after a salon validates their code
type Receipt struct {
	ToEmail         string
	FullName        string
	SalonName       string
	Code            string
	PricePerHaircut string
	CreditsLeft     int
	RedeemedAt      time.Time
}

type IEmailService interface {
	SendRedemptionReceipt(receipt Receipt) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, email, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, email, password),
		senderEmail: email,
		senderName:  senderName,
	}
}

func (s *emailService) SendRedemptionReceipt(receipt Receipt) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", receipt.ToEmail)
	m.SetHeader("Subject", "Haircut confirmed at "+receipt.SalonName)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s, your haircut is confirmed</h2>
			<p>Salon: <strong>%s</strong></p>
			<p>Code: <strong>%s</strong></p>
			<p>Date: %s</p>
			<p>Credits left this cycle: <strong>%d</strong></p>
		</div>
	`, receipt.FullName, receipt.SalonName, receipt.Code, receipt.RedeemedAt.Format("02/01/2006 15:04"), receipt.CreditsLeft)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send receipt to %s: %w", receipt.ToEmail, err)
	}
	return nil
}

// NoopEmailService is used when SMTP is not configured
type NoopEmailService struct{}

func (NoopEmailService) SendRedemptionReceipt(receipt Receipt) error {
	return nil
}
