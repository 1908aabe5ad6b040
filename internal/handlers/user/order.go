package user

import (
	"log"
	"net/http"

	"webora_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

var orders = repository.OrderRepository{}

// GetMyOrders récupère l'historique des commandes du client connecté
func GetMyOrders(c *gin.Context) {
	customerID := c.GetString("user_id")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	list, err := orders.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		log.Printf("❌ Erreur récupération commandes de %s: %v", customerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// GetOrderByID récupère une commande spécifique du client connecté
func GetOrderByID(c *gin.Context) {
	customerID := c.GetString("user_id")
	orderID := c.Param("id")

	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	order, err := orders.GetByID(c.Request.Context(), orderID)
	// Une commande d'un autre client est indiscernable d'une commande absente
	if err != nil || order.CustomerID != customerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}
