package utils

import (
	"coursehub/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: CourseHub <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3B5A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3B5A; line-height: 1.6; }
			.footer { padding: 20px 30px; text-align: center; color: #999999; font-size: 12px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">You are receiving this email because of your CourseHub account.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendEnrollmentEmail confirms a course enrollment to the student
func SendEnrollmentEmail(email, name, courseTitle string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<p>Head over to your dashboard to start learning.</p>`, name, courseTitle)

	return SendEmail([]string{email}, "Enrollment confirmed: "+courseTitle, getEmailTemplate("Enrollment Confirmed", body))
}
