package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateOrderID génère un identifiant de commande lisible :
// ORD-<horodatage UTC>-<6 hex aléatoires>, ex: ORD-20260115093012-A3F09C.
// L'unicité n'est pas garantie structurellement : c'est l'insertion
// conditionnelle en base qui sert de filet, l'appelant regénère en cas
// de collision.
func GenerateOrderID() string {
	suffix := make([]byte, 3)
	rand.Read(suffix)
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().UTC().Format("20060102150405"),
		strings.ToUpper(hex.EncodeToString(suffix)))
}
