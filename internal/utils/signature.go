package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SignPayment recalcule la signature attendue d'une confirmation de paiement :
// HMAC-SHA256(secret, "<remote_order_id>|<remote_payment_id>") en hexadécimal.
// C'est le format signé par la passerelle Razorpay.
func SignPayment(secret, remoteOrderID, remotePaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(remoteOrderID + "|" + remotePaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature compare la signature reçue à la signature attendue.
// Comparaison en temps constant, comme pour les hashs de mots de passe.
func VerifyPaymentSignature(secret, remoteOrderID, remotePaymentID, signature string) bool {
	expected := SignPayment(secret, remoteOrderID, remotePaymentID)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
