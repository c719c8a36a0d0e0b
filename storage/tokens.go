package storage

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
)

// TokenStore is the typed view over a Store used by the API client and the session.
type TokenStore struct {
	store  Store
	logger *zap.Logger
}

// NewTokenStore wraps store.
func NewTokenStore(store Store, logger *zap.Logger) *TokenStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenStore{store: store, logger: logger}
}

// AccessToken returns the persisted access token or "".
func (t *TokenStore) AccessToken() string {
	return t.get(KeyAccessToken)
}

// RefreshToken returns the persisted refresh token or "".
func (t *TokenStore) RefreshToken() string {
	return t.get(KeyRefreshToken)
}

// SetTokens persists a token pair. An empty access token removes the stored
// one; an empty refresh token leaves the stored refresh token untouched.
func (t *TokenStore) SetTokens(pair models.TokenPair) error {
	if pair.AccessToken == "" {
		if err := t.store.Delete(KeyAccessToken); err != nil {
			return fmt.Errorf("remove access token: %w", err)
		}
	} else if err := t.store.Set(KeyAccessToken, pair.AccessToken); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}

	if pair.RefreshToken != "" {
		if err := t.store.Set(KeyRefreshToken, pair.RefreshToken); err != nil {
			return fmt.Errorf("store refresh token: %w", err)
		}
	}
	return nil
}

// ClearTokens removes both tokens.
func (t *TokenStore) ClearTokens() error {
	return t.store.Delete(KeyAccessToken, KeyRefreshToken)
}

// SaveUser persists the user snapshot as JSON.
func (t *TokenStore) SaveUser(user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := t.store.Set(KeyUser, string(data)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// User returns the persisted user snapshot, or nil when none is stored.
// A corrupt snapshot is reported as an error.
func (t *TokenStore) User() (*models.User, error) {
	raw, ok, err := t.store.Get(KeyUser)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// ClearSession removes both tokens and the user snapshot.
func (t *TokenStore) ClearSession() error {
	return t.store.Delete(KeyAccessToken, KeyRefreshToken, KeyUser)
}

// Language returns the persisted language or fallback.
func (t *TokenStore) Language(fallback string) string {
	if lang := t.get(KeyLanguage); lang != "" {
		return lang
	}
	return fallback
}

// SetLanguage persists the interface language.
func (t *TokenStore) SetLanguage(lang string) error {
	return t.store.Set(KeyLanguage, lang)
}

func (t *TokenStore) get(key string) string {
	v, _, err := t.store.Get(key)
	if err != nil {
		t.logger.Warn("failed to read persisted value", zap.String("key", key), zap.Error(err))
		return ""
	}
	return v
}
