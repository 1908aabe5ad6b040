package user

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"webora_backend/internal/checkout"
	"webora_backend/internal/models"
	"webora_backend/internal/repository"
	"webora_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var customers = repository.CustomerRepository{}

// Register crée un compte client explicite (par opposition aux comptes
// créés implicitement au checkout)
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Phone    string `json:"phone"`
		Company  string `json:"company"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
		return
	}

	customer := &models.Customer{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  hash,
		Name:      input.Name,
		Phone:     input.Phone,
		Company:   input.Company,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	err = customers.Create(c.Request.Context(), customer)
	if errors.Is(err, checkout.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}
	if err != nil {
		log.Printf("❌ Erreur création client: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
		return
	}

	token, err := utils.GenerateJWT(customer.ID, utils.SubjectCustomer, customer.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"customerId": customer.ID,
		"email":      customer.Email,
		"name":       customer.Name,
	})
}

// Login authentifie un client par email/mot de passe
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	customer, err := customers.GetByEmail(c.Request.Context(), email)
	if err != nil || !utils.CheckPassword(input.Password, customer.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	// Compte créé au checkout : le mot de passe temporaire n'a jamais été
	// communiqué, la connexion directe est impossible par construction
	if customer.RequiresPasswordSetup {
		c.JSON(http.StatusForbidden, gin.H{"error": "This account was created during checkout and needs a password to be set"})
		return
	}

	if !customer.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is disabled"})
		return
	}

	if err := customers.UpdateLastLogin(c.Request.Context(), customer.ID, time.Now()); err != nil {
		log.Printf("⚠️ Impossible de tracer la connexion de %s: %v", customer.ID, err)
	}

	token, err := utils.GenerateJWT(customer.ID, utils.SubjectCustomer, customer.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"customerId": customer.ID,
		"email":      customer.Email,
		"name":       customer.Name,
	})
}

// Me retourne le profil du client authentifié
func Me(c *gin.Context) {
	customerID := c.GetString("user_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	customer, err := customers.GetByID(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, customer)
}
