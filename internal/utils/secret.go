package utils

import (
	"encoding/base64"
	"fmt"
)

// Encodage réversible des valeurs de settings marquées "encrypted".
// ⚠️ Ce n'est PAS du chiffrement : c'est de l'obfuscation pour éviter
// qu'un secret traîne en clair dans la table settings. Si la
// confidentialité compte vraiment, remplacer par du chiffrement
// authentifié avec une clé gérée (voir DESIGN.md).

// EncodeSecret encode un secret avant stockage
func EncodeSecret(plain string) string {
	return base64.StdEncoding.EncodeToString([]byte(plain))
}

// DecodeSecret inverse EncodeSecret. Le décodage doit toujours rester
// symétrique du chemin d'écriture, sinon le secret est corrompu en silence.
func DecodeSecret(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("valeur de setting illisible: %w", err)
	}
	return string(raw), nil
}
