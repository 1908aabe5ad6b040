package repository

import (
	"context"
	"time"

	"webora_backend/internal/cache"
	"webora_backend/internal/checkout"
	"webora_backend/internal/database"
	"webora_backend/internal/models"
	"webora_backend/internal/utils"

	"github.com/gocql/gocql"
)

// SettingsRepository gère les entrées de configuration clé/valeur (table
// settings du keyspace commandes) et implémente checkout.SettingsSource.
// Les lectures passent par le cache Redis, invalidé à chaque écriture.
type SettingsRepository struct{}

// Get retourne un setting tel que stocké (valeur encore encodée si encrypted)
func (SettingsRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	s, err := cache.GetSettingFromCache(key)
	if err == gocql.ErrNotFound {
		return nil, checkout.ErrNotConfigured
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Put écrit un setting ; la valeur est passée par l'encodeur d'obfuscation
// quand encrypted est vrai, le cache est invalidé dans la foulée
func (SettingsRepository) Put(ctx context.Context, key, value string, encrypted bool) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	stored := value
	if encrypted {
		stored = utils.EncodeSecret(value)
	}

	if err := session.Query(database.StmtUpsertSetting, key, stored, encrypted, time.Now()).
		WithContext(ctx).Exec(); err != nil {
		return err
	}

	cache.InvalidateSettingCache(key)
	return nil
}

// GatewayCredentials résout la paire (key id, secret décodé) de la passerelle.
// ErrNotConfigured si l'une des deux entrées manque.
func (r SettingsRepository) GatewayCredentials(ctx context.Context) (string, string, error) {
	keyID, err := r.Get(ctx, models.SettingRazorpayKeyID)
	if err != nil {
		return "", "", err
	}

	secret, err := r.Get(ctx, models.SettingRazorpayKeySecret)
	if err != nil {
		return "", "", err
	}

	secretValue := secret.Value
	if secret.Encrypted {
		secretValue, err = utils.DecodeSecret(secret.Value)
		if err != nil {
			return "", "", err
		}
	}

	if keyID.Value == "" || secretValue == "" {
		return "", "", checkout.ErrNotConfigured
	}
	return keyID.Value, secretValue, nil
}
