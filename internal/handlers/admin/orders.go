package admin

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"webora_backend/internal/cache"
	"webora_backend/internal/checkout"
	"webora_backend/internal/models"
	"webora_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

var orders = repository.OrderRepository{}

// UpdateOrderStatus applique une transition administrative de statut.
// Les transitions sont validées contre le graphe du cycle de vie : pas
// d'écrasement arbitraire, et pending→paid reste réservée à la
// confirmation de paiement signée.
func UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + input.Status})
		return
	}

	order, err := orders.GetByID(c.Request.Context(), orderID)
	if errors.Is(err, checkout.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load order"})
		return
	}

	if input.Status == models.StatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Orders are marked paid through payment confirmation only"})
		return
	}
	if !models.CanTransition(order.Status, input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid status transition: %s → %s", order.Status, input.Status),
		})
		return
	}

	applied, current, err := orders.UpdateStatus(c.Request.Context(), orderID, order.Status, input.Status, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Status update failed"})
		return
	}
	if !applied {
		// Le statut a changé entre la lecture et l'écriture conditionnelle
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Order status changed concurrently",
			"status": current,
		})
		return
	}

	log.Printf("📦 Commande %s: %s → %s", orderID, order.Status, input.Status)
	cache.PublishOrderStatus(orderID, input.Status)

	order.Status = input.Status
	c.JSON(http.StatusOK, order)
}
