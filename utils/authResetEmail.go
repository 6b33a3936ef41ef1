package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendResetCodeEmail delivers a password reset code over SMTP.
func SendResetCodeEmail(email, code string) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "MediTrack Password Reset Code")

	m.SetBody("text/plain", "Your password reset code is: "+code)

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Password Reset Code</title>
	</head>
	<body>
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 20px auto;">
			<h1>Password Reset Code</h1>
			<p>Your MediTrack password reset code is:</p>
			<p style="font-weight: bold; color: #007bff;">` + code + `</p>
			<p>The code expires in 15 minutes. If you did not request a reset, ignore this email.</p>
		</div>
	</body>
	</html>`
	m.AddAlternative("text/html", htmlBody)

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, fromEmail, os.Getenv("SMTP_PASS"))
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send reset code email to %s: %v", email, err)
		return err
	}
	return nil
}
