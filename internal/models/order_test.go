package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"paiement confirmé", StatusPending, StatusPaid, true},
		{"annulation avant paiement", StatusPending, StatusCancelled, true},
		{"mise en production", StatusPaid, StatusProcessing, true},
		{"livraison", StatusProcessing, StatusCompleted, true},
		{"remboursement après paiement", StatusPaid, StatusRefunded, true},
		{"remboursement en cours de traitement", StatusProcessing, StatusRefunded, true},
		{"remboursement après livraison", StatusCompleted, StatusRefunded, true},
		{"pas de saut pending→processing", StatusPending, StatusProcessing, false},
		{"pas de saut pending→completed", StatusPending, StatusCompleted, false},
		{"pas de retour paid→pending", StatusPaid, StatusPending, false},
		{"pas de remboursement avant paiement", StatusPending, StatusRefunded, false},
		{"cancelled est terminal", StatusCancelled, StatusPending, false},
		{"refunded est terminal", StatusRefunded, StatusPaid, false},
		{"pas d'annulation après paiement", StatusPaid, StatusCancelled, false},
		{"statut inconnu", "shipped", StatusPaid, false},
		{"cible inconnue", StatusPaid, "shipped", false},
		{"pas de transition identité", StatusPaid, StatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusPaid, StatusProcessing, StatusCompleted, StatusCancelled, StatusRefunded} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("shipped"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("PAID"))
}

func TestIsValidTier(t *testing.T) {
	assert.True(t, IsValidTier(TierBasic))
	assert.True(t, IsValidTier(TierStandard))
	assert.True(t, IsValidTier(TierPremium))
	assert.False(t, IsValidTier("gold"))
	assert.False(t, IsValidTier(""))
	assert.False(t, IsValidTier("Basic"))
}

func TestPriceFor(t *testing.T) {
	svc := Service{
		ID:       "web-dev",
		Prices:   map[string]float64{TierBasic: 1500, TierStandard: 3000},
		Currency: "INR",
	}

	price, ok := svc.PriceFor(TierStandard)
	assert.True(t, ok)
	assert.Equal(t, 3000.0, price)

	// formule valide mais sans tarif configuré pour cette prestation
	_, ok = svc.PriceFor(TierPremium)
	assert.False(t, ok)
}
