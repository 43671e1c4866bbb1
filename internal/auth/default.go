package auth

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/rs/zerolog/log"
)

// defaultProvider uses DefaultAzureCredential, which covers environment
// credentials, workload identity and managed identity in that order.
type defaultProvider struct{}

func (p *defaultProvider) Acquire(ctx context.Context) (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("default credential: %w", err)
	}
	log.Debug().
		Str("action", "auth_acquire").
		Str("method", "default").
		Msg("credential constructed")
	return cred, nil
}

// managedIdentityProvider pins the ambient managed identity explicitly.
type managedIdentityProvider struct {
	clientID string // optional, selects a user-assigned identity
}

func (p *managedIdentityProvider) Acquire(ctx context.Context) (azcore.TokenCredential, error) {
	var opts *azidentity.ManagedIdentityCredentialOptions
	if p.clientID != "" {
		opts = &azidentity.ManagedIdentityCredentialOptions{
			ID: azidentity.ClientID(p.clientID),
		}
	}
	cred, err := azidentity.NewManagedIdentityCredential(opts)
	if err != nil {
		return nil, fmt.Errorf("managed identity credential: %w", err)
	}
	log.Debug().
		Str("action", "auth_acquire").
		Str("method", "managed_identity").
		Msg("credential constructed")
	return cred, nil
}
