package models

import "time"

// Customer est une identité capable de posséder des commandes.
// L'email est la clé de recherche principale (toujours en minuscules).
// Pas de liste de commandes stockée ici : la relation appartient à Order
// (customer_id) et se retrouve via la table orders_by_customer.
type Customer struct {
	ID       string `json:"customerId"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	IsActive bool   `json:"isActive"`

	// Vrai pour les comptes créés implicitement au checkout : le mot de passe
	// temporaire n'est jamais communiqué, le compte attend une définition de
	// mot de passe avant de pouvoir se connecter.
	RequiresPasswordSetup bool `json:"requiresPasswordSetup,omitempty"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
