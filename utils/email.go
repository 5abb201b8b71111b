package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email through the configured SMTP relay
func SendEmail(to, subject, body string) error {
	config := emailConfigFromEnv()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendPaymentReceiptEmail sends the buyer a confirmation after a successful
// payment callback
func SendPaymentReceiptEmail(to, userName, planName, amount, merchantOid string) error {
	subject := "Your QRMenu payment was received"
	body := fmt.Sprintf(`
		<h2>Thank you, %s!</h2>
		<p>We received your payment and your subscription is being activated.</p>
		<table>
			<tr><td>Plan</td><td><strong>%s</strong></td></tr>
			<tr><td>Amount</td><td><strong>%s</strong></td></tr>
			<tr><td>Order no</td><td>%s</td></tr>
		</table>
		<p>You can manage your subscription from the admin panel at any time.</p>
	`, userName, planName, amount, merchantOid)

	return SendEmail(to, subject, body)
}

// SendWelcomeEmail greets a freshly registered tenant
func SendWelcomeEmail(to, restaurantName, slug string) error {
	subject := "Welcome to QRMenu"
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your digital menu is live at <strong>/menu/%s</strong>.</p>
		<p>Add your categories and products from the admin panel to get started.</p>
	`, restaurantName, slug)

	return SendEmail(to, subject, body)
}
