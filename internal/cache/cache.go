package cache

import (
	"context"
	"encoding/json"
	"time"

	"webora_backend/internal/database"
	"webora_backend/internal/models"

	"github.com/gocql/gocql"
)

const (
	ServiceCacheTTL = 10 * time.Minute
	SettingCacheTTL = 5 * time.Minute
)

// GetServiceFromCache récupère une prestation depuis Redis ou ScyllaDB
func GetServiceFromCache(serviceID string) (*models.Service, error) {
	ctx := context.Background()
	key := "service:" + serviceID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var svc models.Service
		if json.Unmarshal([]byte(data), &svc) == nil {
			return &svc, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	var (
		name, description, currency string
		prices                      map[string]float64
		active                      bool
	)
	err = session.Query(database.StmtServiceByID, serviceID).
		Scan(&name, &description, &prices, &currency, &active)
	if err != nil {
		return nil, err
	}

	svc := &models.Service{
		ID:          serviceID,
		Name:        name,
		Description: description,
		Prices:      prices,
		Currency:    currency,
		Active:      active,
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(svc)
	database.Redis.Set(ctx, key, jsonData, ServiceCacheTTL)

	return svc, nil
}

// InvalidateServiceCache invalide le cache d'une prestation
func InvalidateServiceCache(serviceID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "service:"+serviceID)
}

// GetSettingFromCache récupère un setting depuis Redis ou ScyllaDB.
// La valeur cachée est la valeur STOCKÉE (encodée si encrypted) : le
// décodage reste à la charge de l'appelant, comme pour une lecture directe.
func GetSettingFromCache(key string) (*models.Setting, error) {
	ctx := context.Background()
	cacheKey := "setting:" + key

	data, err := database.Redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var s models.Setting
		if json.Unmarshal([]byte(data), &s) == nil {
			return &s, nil
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var (
		value     string
		encrypted bool
		updatedAt time.Time
	)
	if err := session.Query(database.StmtSettingByKey, key).Scan(&value, &encrypted, &updatedAt); err != nil {
		if err == gocql.ErrNotFound {
			return nil, err
		}
		return nil, err
	}

	s := &models.Setting{Key: key, Value: value, Encrypted: encrypted, UpdatedAt: updatedAt}
	jsonData, _ := json.Marshal(s)
	database.Redis.Set(ctx, cacheKey, jsonData, SettingCacheTTL)

	return s, nil
}

// InvalidateSettingCache invalide le cache d'un setting (appelé après écriture)
func InvalidateSettingCache(key string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "setting:"+key)
}

// PublishOrderStatus notifie le changement de statut d'une commande sur le
// canal Redis écouté par le websocket de suivi
func PublishOrderStatus(orderID, status string) {
	ctx := context.Background()
	database.Redis.Publish(ctx, "order_status:"+orderID, status)
}
