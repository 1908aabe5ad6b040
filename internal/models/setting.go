package models

import "time"

// Clés de configuration de la passerelle de paiement
const (
	SettingRazorpayKeyID     = "razorpay_key_id"
	SettingRazorpayKeySecret = "razorpay_key_secret"
)

// Setting est une entrée de configuration clé/valeur.
// Si Encrypted est vrai, Value est stockée encodée et doit passer par
// utils.DecodeSecret avant utilisation — le même transform que le chemin
// d'écriture, sinon corruption silencieuse.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Encrypted bool      `json:"encrypted"`
	UpdatedAt time.Time `json:"updatedAt"`
}
