package routes

import (
	"webora_backend/internal/handlers/admin"
	"webora_backend/internal/handlers/catalog"
	"webora_backend/internal/handlers/payment"
	"webora_backend/internal/handlers/user"
	"webora_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Catalogue (lecture publique)
	api.GET("/services", catalog.ListServices)
	api.GET("/services/search", catalog.SearchServices)
	api.GET("/services/:id", catalog.GetService)

	// Checkout & paiement (publics : le client peut ne pas encore exister)
	api.POST("/checkout", payment.CreateCheckout)
	api.POST("/payment/confirm", payment.ConfirmPayment)

	// Comptes clients
	auth := api.Group("/auth")
	auth.POST("/register", user.Register)
	auth.POST("/login", user.Login)
	auth.GET("/me", middleware.AuthRequired(), user.Me)

	// Commandes du client connecté
	orders := api.Group("/orders", middleware.AuthRequired())
	orders.GET("", user.GetMyOrders)
	orders.GET("/:id", user.GetOrderByID)
	orders.GET("/:id/ws", user.OrderStatusWebSocket)

	// Administration
	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", admin.Login)

	protected := adminGroup.Group("", middleware.AuthRequired(), middleware.RequireAdmin)
	protected.PATCH("/orders/:id/status", admin.UpdateOrderStatus)
	protected.GET("/settings/payment", admin.GetPaymentSettings)
	protected.PUT("/settings/payment", admin.UpdatePaymentSettings)
}
