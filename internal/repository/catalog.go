package repository

import (
	"context"

	"webora_backend/internal/cache"
	"webora_backend/internal/checkout"
	"webora_backend/internal/database"
	"webora_backend/internal/models"

	"github.com/gocql/gocql"
)

// CatalogRepository implémente checkout.CatalogStore en lecture seule.
// Le catalogue appartient au back-office : ici on ne fait que résoudre
// des prestations et leurs tarifs.
type CatalogRepository struct{}

func (CatalogRepository) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := cache.GetServiceFromCache(serviceID)
	if err == gocql.ErrNotFound {
		return nil, checkout.ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// ListServices retourne toutes les prestations actives du catalogue
func (CatalogRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(database.StmtAllServices).WithContext(ctx).Iter()
	var services []models.Service
	var (
		id, name, description, currency string
		prices                          map[string]float64
		active                          bool
	)
	for iter.Scan(&id, &name, &description, &prices, &currency, &active) {
		if !active {
			prices = nil
			continue
		}
		services = append(services, models.Service{
			ID:          id,
			Name:        name,
			Description: description,
			Prices:      prices,
			Currency:    currency,
			Active:      active,
		})
		prices = nil // gocql réutilise la map sinon
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return services, nil
}
