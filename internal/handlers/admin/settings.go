package admin

import (
	"errors"
	"log"
	"net/http"

	"webora_backend/internal/checkout"
	"webora_backend/internal/models"
	"webora_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

var settings = repository.SettingsRepository{}

// GetPaymentSettings retourne la configuration de la passerelle.
// Le secret n'est JAMAIS renvoyé, seul un indicateur de présence l'est.
func GetPaymentSettings(c *gin.Context) {
	keyID := ""
	if s, err := settings.Get(c.Request.Context(), models.SettingRazorpayKeyID); err == nil {
		keyID = s.Value
	}

	configured := false
	if _, _, err := settings.GatewayCredentials(c.Request.Context()); err == nil {
		configured = true
	} else if !errors.Is(err, checkout.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"keyId":      keyID,
		"keySecret":  "***HIDDEN***",
		"configured": configured,
	})
}

// UpdatePaymentSettings enregistre les identifiants de la passerelle :
// key id en clair, secret passé par l'encodeur avec encrypted=true
func UpdatePaymentSettings(c *gin.Context) {
	var input struct {
		KeyID     string `json:"keyId" binding:"required"`
		KeySecret string `json:"keySecret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := settings.Put(ctx, models.SettingRazorpayKeyID, input.KeyID, false); err != nil {
		log.Printf("❌ Erreur écriture settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save settings"})
		return
	}
	if err := settings.Put(ctx, models.SettingRazorpayKeySecret, input.KeySecret, true); err != nil {
		log.Printf("❌ Erreur écriture settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save settings"})
		return
	}

	log.Println("🔑 Identifiants de la passerelle de paiement mis à jour")
	c.JSON(http.StatusOK, gin.H{"message": "Payment settings saved"})
}
