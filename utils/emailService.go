package utils

import (
	"edvid/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Generic Send Email
func SendEmail(to, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SendGrid key not configured, skipping email to %s", to)
		return nil
	}

	from := mail.NewEmail("EdVid", config.AppConfig.EmailSender)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	return nil
}

// HTML Wrapper (Professional Look)
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.content h2 { color: #1A1A2E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #4F8EF7; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4F8EF7; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>EDVID</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 EdVid. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / First Sign-In
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to EdVid"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>EdVid</strong>! Your account has been created.</p>
		<p>Create a space, generate your first video and start building courses for your learners.</p>
	`, name)

	SendEmail(email, name, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Course Completed
func SendCourseCompletionEmail(email, name, courseName string) {
	subject := "Course Completed: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed every lesson in <strong>%s</strong>.</p>
		<div class="info-box">
			You can now request a verifiable credential for this course from your dashboard.
		</div>
		<a href="#" class="btn">Request Credential</a>
	`, name, courseName)

	SendEmail(email, name, subject, getEmailTemplate("Course Completed!", body))
}

// 3. Credential Issued
func SendCredentialIssuedEmail(email, name, courseName, credentialNumber string) {
	subject := "Credential Issued: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your credential for <strong>%s</strong> has been issued.</p>
		<div class="info-box">
			<strong>Credential Number:</strong> %s
		</div>
		<p>You can share this credential with anyone who needs to verify your completion.</p>
	`, name, courseName, credentialNumber)

	SendEmail(email, name, subject, getEmailTemplate("Credential Issued", body))
}

// 4. Video Ready
func SendVideoReadyEmail(email, name, videoTitle string) {
	subject := "Your Video is Ready: " + videoTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your generated video <strong>%s</strong> has finished rendering and is ready to watch.</p>
		<a href="#" class="btn">Open Space</a>
	`, name, videoTitle)

	SendEmail(email, name, subject, getEmailTemplate("Video Ready", body))
}
