package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

// EmailNotificationService delivers approval decisions over AWS SES.
// When SES is not configured it logs the message instead of sending it,
// so local development never needs AWS credentials.
type EmailNotificationService struct {
	sesClient *ses.SES
	fromEmail string
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewEmailNotificationService() *EmailNotificationService {
	svc := &EmailNotificationService{
		fromEmail: os.Getenv("FROM_EMAIL"),
	}
	if svc.fromEmail == "" {
		svc.fromEmail = "no-reply@hirebridge.io"
	}

	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	region := os.Getenv("AWS_REGION")

	if accessKey == "" || secretKey == "" || region == "" {
		log.Println("SES not configured, notification emails will be logged only")
		return svc
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		log.Printf("Failed to create AWS session, notification emails will be logged only: %v", err)
		return svc
	}

	svc.sesClient = ses.New(sess)
	return svc
}

// NotifyDecision sends an approval or rejection notice. It never returns
// an error: any failure is logged and reported as false.
func (s *EmailNotificationService) NotifyDecision(kind, email, name, action, reason string) bool {
	if email == "" {
		log.Printf("Skipping %s %s notification: no recipient email", kind, action)
		return false
	}

	template := decisionTemplate(kind, name, action, reason)

	if s.sesClient == nil {
		// Log-only delivery for environments without SES
		log.Printf("EMAIL NOTIFICATION:")
		log.Printf("To: %s", email)
		log.Printf("Subject: %s", template.Subject)
		log.Printf("Body: %s", template.Body)
		return true
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(email)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{Data: aws.String(template.Subject)},
			Body: &ses.Body{
				Text: &ses.Content{Data: aws.String(template.Body)},
			},
		},
	}

	if _, err := s.sesClient.SendEmail(input); err != nil {
		log.Printf("Failed to send %s %s notification to %s: %v", kind, action, email, err)
		return false
	}
	return true
}

func decisionTemplate(kind, name, action, reason string) EmailTemplate {
	decidedAt := time.Now().Format("January 2, 2006 at 3:04 PM")

	if kind == "company" {
		if action == "approve" {
			return EmailTemplate{
				Subject: fmt.Sprintf("✅ %s is now verified on HireBridge", name),
				Body: fmt.Sprintf(`
Hello,

Great news! %s has been verified by our team on %s.

What's Next:
• Your company page is now visible to candidates
• You can post job openings right away
• Team members can be invited from your dashboard

Best regards,
HireBridge Team
			`, name, decidedAt),
			}
		}
		body := fmt.Sprintf(`
Hello,

Unfortunately we could not verify %s at this time.
`, name)
		if reason != "" {
			body += fmt.Sprintf("\nReason: %s\n", reason)
		}
		body += `
You can update your company details and request another review from
your dashboard.

Best regards,
HireBridge Team
		`
		return EmailTemplate{
			Subject: fmt.Sprintf("❌ Verification update for %s", name),
			Body:    body,
		}
	}

	if action == "approve" {
		return EmailTemplate{
			Subject: "✅ Your HireBridge profile has been approved",
			Body: fmt.Sprintf(`
Hello %s,

Great news! Your candidate profile was approved on %s.

What's Next:
• Your profile is now visible to employers
• You can apply to open positions right away

Best regards,
HireBridge Team
		`, name, decidedAt),
		}
	}
	return EmailTemplate{
		Subject: "📝 An update on your HireBridge profile",
		Body: fmt.Sprintf(`
Hello %s,

Unfortunately your candidate profile was not approved at this time.
Please review your details and submit your profile again.

Best regards,
HireBridge Team
		`, name),
	}
}
