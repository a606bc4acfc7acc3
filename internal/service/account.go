// Package service contains application services.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Strob0t/BoardBridge/internal/domain"
	"github.com/Strob0t/BoardBridge/internal/domain/failure"
	"github.com/Strob0t/BoardBridge/internal/i18n"
	"github.com/Strob0t/BoardBridge/internal/port/kvstore"
)

// KV key prefixes. Each key is scoped to a single Mattermost user.
const (
	configKeyPrefix = "config_"
	tokenKeyPrefix  = "token_"
)

// StoredConfig is the per-user Trello configuration kept in the KV store.
type StoredConfig struct {
	APIKey    string `json:"trello_apikey"`
	Token     string `json:"trello_oauth_access_token"`
	Workspace string `json:"trello_workspace"`
}

// StoredUserToken is the per-user Trello OAuth token kept in the KV store.
type StoredUserToken struct {
	Token string `json:"oauth_token"`
}

// AccountService manages per-user Trello credentials in the KV store.
type AccountService struct {
	kv kvstore.Store
}

// NewAccountService creates a new AccountService.
func NewAccountService(kv kvstore.Store) *AccountService {
	return &AccountService{kv: kv}
}

// StoreConfig persists a user's Trello configuration.
func (s *AccountService) StoreConfig(ctx context.Context, userID string, cfg StoredConfig) error {
	if cfg.APIKey == "" {
		return errors.New("api key is required")
	}
	return s.kv.Set(ctx, configKeyPrefix+userID, cfg)
}

// LoadConfig returns a user's Trello configuration.
// Returns domain.ErrNotFound when the user has never been configured.
func (s *AccountService) LoadConfig(ctx context.Context, userID string) (StoredConfig, error) {
	var cfg StoredConfig
	if err := s.kv.Get(ctx, configKeyPrefix+userID, &cfg); err != nil {
		return StoredConfig{}, err
	}
	return cfg, nil
}

// Connect stores a user's Trello OAuth token.
func (s *AccountService) Connect(ctx context.Context, userID, token string) error {
	if token == "" {
		return errors.New("token is required")
	}
	return s.kv.Set(ctx, tokenKeyPrefix+userID, StoredUserToken{Token: token})
}

// Disconnect removes a user's Trello OAuth token.
func (s *AccountService) Disconnect(ctx context.Context, userID string) error {
	return s.kv.Delete(ctx, tokenKeyPrefix+userID)
}

// Token returns a user's stored Trello OAuth token. When no token exists the
// error carries a localized "not connected" message suitable for the caller.
func (s *AccountService) Token(ctx context.Context, userID string, loc *i18n.Localizer, siteURL, appPath string) (string, error) {
	var tok StoredUserToken
	err := s.kv.Get(ctx, tokenKeyPrefix+userID, &tok)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", failure.Wrap(domain.ErrNotConnected, failure.KindMarkdown,
				loc.Text(i18n.KeyNotConnected), siteURL, appPath)
		}
		return "", fmt.Errorf("load token: %w", err)
	}
	if tok.Token == "" {
		return "", failure.Wrap(domain.ErrNotConnected, failure.KindMarkdown,
			loc.Text(i18n.KeyNotConnected), siteURL, appPath)
	}
	return tok.Token, nil
}
