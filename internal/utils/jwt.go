package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Types de sujet portés par les tokens de session
const (
	SubjectCustomer = "customer"
	SubjectAdmin    = "admin"
)

// JWTSecret retourne le secret de signature des tokens de session
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateJWT émet un token de session signé HS256 portant l'identité
// du sujet (client ou admin), valable 24h
func GenerateJWT(subjectID, subjectType, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":          subjectID,
		"subject_type": subjectType,
		"email":        email,
		"exp":          time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}
