package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"webora_backend/internal/models"

	"github.com/wneessen/go-mail"
)

// SendConfirmationEmail envoie l'e-mail de confirmation de paiement,
// avec la facture PDF en pièce jointe si disponible
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@webora.in"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("webora_invoice.pdf", bytes.NewReader(pdfAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le corps HTML de l'e-mail de confirmation
func GenerateOrderConfirmationHTML(order models.Order, customer models.Customer) string {
	name := customer.Name
	if name == "" {
		name = order.Customer.Name
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Payment confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order, %s!</h2>
		<p>We have received your payment. Here is a summary:</p>
		<table style="width: 100%%; border-collapse: collapse;">
			<tr><td style="padding: 6px 0;">Order reference</td><td style="text-align: right;"><strong>%s</strong></td></tr>
			<tr><td style="padding: 6px 0;">Service</td><td style="text-align: right;">%s (%s)</td></tr>
			<tr><td style="padding: 6px 0;">Amount paid</td><td style="text-align: right;"><strong>%.2f %s</strong></td></tr>
		</table>
		<p>Our team will reach out shortly to kick off your project.</p>
		<p style="color: #888; font-size: 12px;">Webora — web services studio</p>
	</div>
</body>
</html>`, name, order.OrderID, order.ServiceID, order.PackageTier, order.Amount, order.Currency)
}
