package models

import "time"

// Statuts possibles d'une commande
const (
	StatusPending    = "pending"
	StatusPaid       = "paid"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
)

// statusTransitions décrit le graphe des transitions autorisées.
// Seule pending→paid est déclenchée par le système (confirmation de paiement),
// tout le reste passe par l'opération administrative.
var statusTransitions = map[string][]string{
	StatusPending:    {StatusPaid, StatusCancelled},
	StatusPaid:       {StatusProcessing, StatusRefunded},
	StatusProcessing: {StatusCompleted, StatusRefunded},
	StatusCompleted:  {StatusRefunded},
}

// IsValidStatus vérifie qu'un statut fait partie de l'énumération
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusProcessing, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// CanTransition vérifie qu'une transition de statut est autorisée par le graphe
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CustomerDetails est la copie dénormalisée des coordonnées du client
// au moment de la commande (indépendante des modifications ultérieures du profil)
type CustomerDetails struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Company      string `json:"company,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}

// Order représente une tentative d'achat. Jamais supprimée, uniquement
// transitionnée vers cancelled/refunded (piste d'audit).
type Order struct {
	OrderID         string          `json:"orderId"`
	CustomerID      string          `json:"customerId"`
	ServiceID       string          `json:"serviceId"`
	PackageTier     string          `json:"packageTier"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	RemoteOrderID   string          `json:"remoteOrderId"`
	RemotePaymentID string          `json:"remotePaymentId,omitempty"`
	RemoteSignature string          `json:"-"`
	Customer        CustomerDetails `json:"customerDetails"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
