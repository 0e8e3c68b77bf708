package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendWelcomeEmail sends a greeting to a freshly registered account. It is
// best-effort: registration succeeds whether or not the email goes out, and
// without a SENDGRID_API_KEY it does nothing.
func SendWelcomeEmail(email, firstName string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil
	}

	from := mail.NewEmail("Speakup", "donotreply@speakup.example.com")
	subject := "Welcome to Speakup"
	to := mail.NewEmail(firstName, email)

	plainTextContent := fmt.Sprintf("Hi %s, your Speakup account is ready. Log in any time to leave feedback.", firstName)
	htmlContent := fmt.Sprintf("Hi %s,<br><br>Your Speakup account is ready. Log in any time to leave feedback.", firstName)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sending welcome email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sending welcome email: status %d", response.StatusCode)
	}

	log.Println("welcome email sent to:", email)
	return nil
}
