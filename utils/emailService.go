package utils

import (
	"cboost/config"
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
	msg += fmt.Sprintf("From: ConfianceBoost <%s>\r\n", from)
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

// SendWelcomeEmail notifies a customer that their purchase was confirmed and
// their training access is active. Failures are logged by SendEmail and never
// block provisioning.
func SendWelcomeEmail(email, name, orderNumber string) {
	if config.AppConfig.EmailSender == "" {
		return // email not configured
	}

	dashboardURL := config.AppConfig.FrontendURL + "/dashboard"

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head><meta charset="UTF-8"><title>Bienvenue dans ConfianceBoost !</title></head>
	<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="background: linear-gradient(135deg, #000000, #1a1a1a); padding: 40px; border-radius: 20px; text-align: center;">
			<h1 style="color: #FFD700; font-size: 32px;">Bienvenue dans ConfianceBoost !</h1>
			<p style="color: #ffffff; font-size: 18px;">
				Félicitations %s ! Votre paiement a été confirmé et votre accès à la formation premium est maintenant activé.
			</p>
			<div style="background: rgba(255, 215, 0, 0.1); padding: 20px; border-radius: 10px; margin: 30px 0;">
				<p style="color: #ffffff; margin: 5px 0;"><strong>Numéro de commande :</strong> %s</p>
				<p style="color: #ffffff; margin: 5px 0;"><strong>Email :</strong> %s</p>
				<p style="color: #ffffff; margin: 5px 0;"><strong>Formation :</strong> ConfianceBoost Premium</p>
			</div>
			<a href="%s" style="background: linear-gradient(135deg, #FFD700, #FFA500); color: #000000; padding: 15px 30px; text-decoration: none; border-radius: 10px; font-weight: bold; font-size: 18px; display: inline-block;">
				Accéder à ma formation
			</a>
			<p style="color: #cccccc; font-size: 14px; margin-top: 30px;">
				Besoin d'aide ? Contactez-nous à support@confianceboost.fr
			</p>
		</div>
	</body>
	</html>`, name, orderNumber, email, dashboardURL)

	SendEmail([]string{email}, "Bienvenue dans ConfianceBoost !", body)
}
