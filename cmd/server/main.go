package main

import (
	"log"
	"os"
	"strings"
	"time"

	"webora_backend/internal/cache"
	"webora_backend/internal/checkout"
	"webora_backend/internal/config"
	"webora_backend/internal/database"
	"webora_backend/internal/gateway"
	"webora_backend/internal/handlers/payment"
	"webora_backend/internal/models"
	"webora_backend/internal/repository"
	"webora_backend/internal/routes"
	"webora_backend/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	orch := &checkout.Orchestrator{
		Customers: repository.CustomerRepository{},
		Orders:    repository.OrderRepository{},
		Catalog:   repository.CatalogRepository{},
		Settings:  repository.SettingsRepository{},
		Gateway:   gateway.NewRazorpay(10 * time.Second),
		Now:       time.Now,
		OnPaid:    notifyPaidOrder,
	}
	payment.Init(orch)

	r := gin.Default()
	r.Use(corsMiddleware())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Webora lancé sur le port", port)
	r.Run(":" + port)
}

// notifyPaidOrder diffuse le passage en paid : notification temps réel puis
// e-mail de confirmation avec facture. Tout est best-effort, le paiement est
// déjà persisté.
func notifyPaidOrder(order models.Order, customer models.Customer) {
	cache.PublishOrderStatus(order.OrderID, order.Status)

	html := utils.GenerateOrderConfirmationHTML(order, customer)

	pdf, err := utils.GenerateInvoicePDF(order)
	if err != nil {
		log.Printf("⚠️ Facture PDF indisponible pour %s: %v", order.OrderID, err)
		pdf = nil
	}

	if err := utils.SendConfirmationEmail(customer.Email, "Your Webora order is confirmed", html, pdf); err != nil {
		log.Printf("❌ Erreur envoi e-mail confirmation: %v", err)
	} else {
		log.Println("📧 E-mail de confirmation envoyé à", customer.Email)
	}
}

func corsMiddleware() gin.HandlerFunc {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	return cors.New(cors.Config{
		AllowOrigins:     strings.Split(origins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
