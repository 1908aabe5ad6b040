package utils

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// Coût bcrypt : 12 rounds, salt par enregistrement géré par bcrypt lui-même
const BcryptCost = 12

// HashPassword hash un mot de passe avec bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword vérifie un mot de passe contre son hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// RandomTempPassword génère le mot de passe temporaire des comptes créés
// implicitement au checkout. Jamais communiqué ni loggé : le compte reste
// inutilisable en connexion directe tant que le mot de passe n'a pas été défini.
func RandomTempPassword() string {
	b := make([]byte, 24)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
