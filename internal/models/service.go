package models

// Formules de vente d'une prestation
const (
	TierBasic    = "basic"
	TierStandard = "standard"
	TierPremium  = "premium"
)

// IsValidTier vérifie qu'une formule fait partie de l'énumération
func IsValidTier(t string) bool {
	switch t {
	case TierBasic, TierStandard, TierPremium:
		return true
	}
	return false
}

// Service est une prestation du catalogue, vendue par formule.
// L'identifiant est un slug lisible (ex: "web-dev").
type Service struct {
	ID          string             `json:"serviceId"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Prices      map[string]float64 `json:"prices"`
	Currency    string             `json:"currency"`
	Active      bool               `json:"active"`
}

// PriceFor retourne le tarif d'une formule. ok=false si la formule
// n'a pas de tarif configuré pour cette prestation.
func (s Service) PriceFor(tier string) (float64, bool) {
	price, ok := s.Prices[tier]
	return price, ok
}
