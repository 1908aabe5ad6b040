package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"webora_backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// OrderStatusWebSocket pousse les changements de statut d'une commande en
// temps réel (publiés sur Redis par la confirmation de paiement et
// l'opération administrative)
func OrderStatusWebSocket(c *gin.Context) {
	customerID := c.GetString("user_id")
	orderID := c.Param("id")

	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	order, err := orders.GetByID(c.Request.Context(), orderID)
	if err != nil || order.CustomerID != customerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "order_status:"+orderID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	// Statut courant envoyé à la connexion
	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"orderId": orderID,
		"status":  order.Status,
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(map[string]interface{}{
				"type":    "status_updated",
				"orderId": orderID,
				"status":  msg.Payload,
			}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
