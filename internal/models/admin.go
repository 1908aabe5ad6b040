package models

// Admin est un compte du personnel d'administration.
// Créé hors-ligne (script d'initialisation), jamais via l'API.
type Admin struct {
	ID       string `json:"adminId"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Name     string `json:"name,omitempty"`
}
