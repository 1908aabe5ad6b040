package admin

import (
	"net/http"
	"strings"

	"webora_backend/internal/database"
	"webora_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// Login authentifie un membre du personnel d'administration.
// Les comptes admins sont créés hors-ligne, jamais via l'API.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetCustomersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	var (
		adminID        gocql.UUID
		password, name string
	)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	err = session.Query(database.StmtAdminByEmail, email).
		WithContext(c.Request.Context()).Scan(&adminID, &password, &name)
	if err != nil || !utils.CheckPassword(input.Password, password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	token, err := utils.GenerateJWT(adminID.String(), utils.SubjectAdmin, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": adminID.String(), "email": email, "name": name},
	})
}
