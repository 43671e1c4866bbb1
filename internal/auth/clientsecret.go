package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/config"
)

// clientSecretProvider authenticates as a service principal.
type clientSecretProvider struct {
	tenantID     string
	clientID     string
	clientSecret string
}

// newClientSecretProvider validates configuration and returns a provider.
// All three of tenant, client id and secret are mandatory.
func newClientSecretProvider(cfg config.Config) (*clientSecretProvider, error) {
	if strings.TrimSpace(cfg.Auth.TenantID) == "" ||
		strings.TrimSpace(cfg.Auth.ClientID) == "" ||
		cfg.Auth.ClientSecret == "" {
		return nil, errors.New("client_secret auth requires tenant id, client id and client secret")
	}
	return &clientSecretProvider{
		tenantID:     cfg.Auth.TenantID,
		clientID:     cfg.Auth.ClientID,
		clientSecret: cfg.Auth.ClientSecret,
	}, nil
}

func (p *clientSecretProvider) Acquire(ctx context.Context) (azcore.TokenCredential, error) {
	// Never log the secret content.
	cred, err := azidentity.NewClientSecretCredential(p.tenantID, p.clientID, p.clientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("client secret credential: %w", err)
	}
	log.Debug().
		Str("action", "auth_acquire").
		Str("method", "client_secret").
		Str("client_id", p.clientID).
		Msg("credential constructed")
	return cred, nil
}
