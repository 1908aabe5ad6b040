package payment

import (
	"errors"
	"net/http"

	"webora_backend/internal/checkout"
	"webora_backend/internal/models"

	"github.com/gin-gonic/gin"
)

var orch *checkout.Orchestrator

// Init branche l'orchestrateur construit au démarrage
func Init(o *checkout.Orchestrator) {
	orch = o
}

// CreateCheckout démarre un achat : résolution du tarif, client garanti,
// commande distante créée, commande locale persistée en pending
func CreateCheckout(c *gin.Context) {
	var req struct {
		ServiceID       string `json:"serviceId" binding:"required"`
		PackageType     string `json:"packageType" binding:"required"`
		CustomerDetails struct {
			Name         string `json:"name" binding:"required"`
			Email        string `json:"email" binding:"required,email"`
			Phone        string `json:"phone"`
			Company      string `json:"company"`
			Requirements string `json:"requirements"`
		} `json:"customerDetails" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid checkout request: " + err.Error()})
		return
	}

	result, err := orch.CreateCheckout(c.Request.Context(), checkout.CheckoutRequest{
		ServiceID:   req.ServiceID,
		PackageType: req.PackageType,
		Customer: models.CustomerDetails{
			Name:         req.CustomerDetails.Name,
			Email:        req.CustomerDetails.Email,
			Phone:        req.CustomerDetails.Phone,
			Company:      req.CustomerDetails.Company,
			Requirements: req.CustomerDetails.Requirements,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// orderId exposé = identifiant de la passerelle, attendu par le widget
	// de paiement côté front
	c.JSON(http.StatusOK, gin.H{
		"orderId":    result.RemoteOrderID,
		"amount":     result.Amount,
		"currency":   result.Currency,
		"customerId": result.CustomerID,
		"keyId":      result.KeyID,
	})
}

// ConfirmPayment traite le callback signé de la passerelle et émet le token
// de session du client en cas de succès
func ConfirmPayment(c *gin.Context) {
	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
		CustomerID        string `json:"customerId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid confirmation request: " + err.Error()})
		return
	}

	result, err := orch.ConfirmPayment(c.Request.Context(), checkout.ConfirmRequest{
		RemoteOrderID:   req.RazorpayOrderID,
		RemotePaymentID: req.RazorpayPaymentID,
		Signature:       req.RazorpaySignature,
		CustomerID:      req.CustomerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"customer": gin.H{
			"id":    result.Customer.ID,
			"email": result.Customer.Email,
			"name":  result.Customer.Name,
		},
	})
}

// respondError traduit la taxonomie de l'orchestrateur en codes HTTP
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, checkout.ErrServiceNotFound),
		errors.Is(err, checkout.ErrOrderNotFound),
		errors.Is(err, checkout.ErrCustomerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, checkout.ErrInvalidTier),
		errors.Is(err, checkout.ErrInvalidEmail),
		errors.Is(err, checkout.ErrSignatureInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, checkout.ErrAlreadyProcessed):
		status = http.StatusConflict
	case errors.Is(err, checkout.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, checkout.ErrGateway):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"message": err.Error()})
}
