package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"webora_backend/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GeneratePaymentReferenceQR génère un QR UPI (référence de paiement de la
// commande) en base64, prêt à mettre dans un <img src="...">
func GeneratePaymentReferenceQR(order models.Order) (string, error) {
	payee := os.Getenv("UPI_PAYEE_VPA")
	if payee == "" {
		payee = "webora@upi"
	}

	upi := fmt.Sprintf("upi://pay?pa=%s&pn=%s&tr=%s&am=%.2f&cu=%s",
		url.QueryEscape(payee),
		url.QueryEscape("Webora"),
		url.QueryEscape(order.OrderID),
		order.Amount,
		url.QueryEscape(order.Currency))

	png, err := qrcode.Encode(upi, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF rend la facture d'une commande payée en PDF via un
// Chrome headless. Nécessite un Chrome/Chromium installé sur la machine ;
// en son absence l'appelant envoie l'e-mail sans pièce jointe.
func GenerateInvoicePDF(order models.Order) ([]byte, error) {
	qr, err := GeneratePaymentReferenceQR(order)
	if err != nil {
		qr = ""
	}

	html := invoiceHTML(order, qr)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer si Chrome ne répond pas
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func invoiceHTML(order models.Order, qrBase64 string) string {
	qrImg := ""
	if qrBase64 != "" {
		qrImg = fmt.Sprintf(`<img src="%s" alt="payment reference" width="128" height="128">`, qrBase64)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Invoice %s</title></head>
<body style="font-family: Arial, sans-serif; padding: 40px; color: #222;">
	<h1 style="margin-bottom: 0;">Webora</h1>
	<p style="color: #888; margin-top: 4px;">Invoice — %s</p>
	<hr>
	<p><strong>Billed to:</strong> %s (%s)</p>
	<table style="width: 100%%; border-collapse: collapse; margin-top: 20px;">
		<tr style="border-bottom: 1px solid #ddd;">
			<th style="text-align: left; padding: 8px 0;">Service</th>
			<th style="text-align: left;">Package</th>
			<th style="text-align: right;">Amount</th>
		</tr>
		<tr>
			<td style="padding: 8px 0;">%s</td>
			<td>%s</td>
			<td style="text-align: right;">%.2f %s</td>
		</tr>
	</table>
	<h3 style="text-align: right; margin-top: 20px;">Total paid: %.2f %s</h3>
	<div style="margin-top: 40px;">%s</div>
	<p style="color: #888; font-size: 11px; margin-top: 40px;">Payment reference: %s</p>
</body>
</html>`,
		order.OrderID, order.OrderID,
		order.Customer.Name, order.Customer.Email,
		order.ServiceID, order.PackageTier, order.Amount, order.Currency,
		order.Amount, order.Currency,
		qrImg, order.RemotePaymentID)
}
