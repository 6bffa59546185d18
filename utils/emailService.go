package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"lms/config"
)

// SendEmail sends an HTML email through the configured SMTP account.
// Sending is skipped with a log line when no sender is configured, so local
// setups work without SMTP credentials.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" {
		log.Printf("Email sender not configured, skipping email %q to %v", subject, to)
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail greets a freshly registered student
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
		<p>Your account is ready. Browse the catalog and enroll in your first course to get started.</p>`, name)
	if err := SendEmail([]string{email}, "Welcome aboard!", getEmailTemplate("Welcome", body)); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", email, err)
	}
}

// SendCertificateEmail notifies a student that their certificate was issued
func SendCertificateEmail(email, name, courseTitle, certNumber string) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
		<p>Congratulations on completing <b>%s</b>!</p>
		<p>Your certificate number is <b>%s</b>. You can download it from your enrollments page.</p>`,
		name, courseTitle, certNumber)
	if err := SendEmail([]string{email}, "Your course certificate", getEmailTemplate("Certificate Issued", body)); err != nil {
		log.Printf("Failed to send certificate email to %s: %v", email, err)
	}
}

// SendReminderEmail nudges a student with a stalled enrollment
func SendReminderEmail(email, name, courseTitle string, progress int) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
		<p>You are %d%% through <b>%s</b>. Pick up where you left off!</p>`, name, progress, courseTitle)
	if err := SendEmail([]string{email}, "Continue your course", getEmailTemplate("Keep Learning", body)); err != nil {
		log.Printf("Failed to send reminder email to %s: %v", email, err)
	}
}
