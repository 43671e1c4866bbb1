package auth

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/config"
)

// armScope is the token scope probed at startup.
const armScope = "https://management.azure.com/.default"

// AcquireCredential is a convenience for call sites that only need the
// credential. It probes a token for the ARM scope so a broken identity fails
// the run here, before any export or storage call is made.
func AcquireCredential(ctx context.Context, cfg config.Config) (azcore.TokenCredential, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	cred, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{armScope}}); err != nil {
		return nil, fmt.Errorf("token probe: %w", err)
	}
	log.Info().
		Str("action", "auth_acquire").
		Str("method", cfg.Auth.Method).
		Msg("azure login OK")
	return cred, nil
}
