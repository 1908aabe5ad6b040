package middleware

import (
	"net/http"

	"webora_backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que le token porte un sujet de type "admin"
func RequireAdmin(c *gin.Context) {
	subjectType, exists := c.Get("subject_type")
	if !exists || subjectType != utils.SubjectAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}
