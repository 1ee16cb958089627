package utils

import (
	"certify/config"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Certify <%s>\r\n", from)
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

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
			.status-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; color: white; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Certify</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message from the certificate verification portal.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendVerificationOutcomeEmail tells the student how their upload ended
func SendVerificationOutcomeEmail(email, name, subjectName, status, remark string) error {
	badgeColor := "#2E7D32"
	title := "Certificate Verified"
	if status != "completed" {
		badgeColor = "#C62828"
		title = "Certificate Verification Failed"
	}

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your certificate for <b>%s</b> has been processed.</p>
		<div class="info-box">
			<span class="status-badge" style="background:%s;">%s</span>
			<p>%s</p>
		</div>`,
		name, subjectName, badgeColor, strings.ToUpper(status), remark,
	)

	return SendEmail([]string{email}, "Certificate Verification Result", getEmailTemplate(title, body))
}

// SendDueDateReminderEmail nudges a student whose request is about to expire
func SendDueDateReminderEmail(email, name, subjectName string, dueDate time.Time) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your certificate for <b>%s</b> has not been uploaded yet.</p>
		<div class="info-box">
			<p>Due date: <b>%s</b></p>
			<p>Uploads after the due date are not accepted.</p>
		</div>`,
		name, subjectName, dueDate.Format("02 Jan 2006 15:04 MST"),
	)

	return SendEmail([]string{email}, "Certificate Upload Reminder", getEmailTemplate("Upload Reminder", body))
}
