package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/config"
)

// Provider abstracts how we obtain an Azure token credential.
type Provider interface {
	Acquire(ctx context.Context) (azcore.TokenCredential, error)
}

// New selects the provider based on cfg.Auth.Method.
// NOTE: This package never initializes logging; main() does via logx.InitFromEnv().
func New(cfg config.Config) (Provider, error) {
	method := strings.ToLower(strings.TrimSpace(cfg.Auth.Method))
	switch method {
	case "", "default":
		log.Debug().
			Str("action", "auth_new").
			Str("method", "default").
			Msg("auth provider selected")
		return &defaultProvider{}, nil

	case "managed_identity":
		log.Debug().
			Str("action", "auth_new").
			Str("method", "managed_identity").
			Msg("auth provider selected")
		return &managedIdentityProvider{clientID: strings.TrimSpace(cfg.Auth.ClientID)}, nil

	case "client_secret":
		log.Debug().
			Str("action", "auth_new").
			Str("method", "client_secret").
			Str("tenant", cfg.Auth.TenantID).
			Msg("auth provider selected")
		return newClientSecretProvider(cfg)

	default:
		return nil, errors.New("unsupported auth method: " + method)
	}
}
