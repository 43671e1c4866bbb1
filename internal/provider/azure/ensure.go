package azure

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// EnsureContainer verifies the container exists, creating it if absent.
func (p *AzureProvider) EnsureContainer(ctx context.Context) error {
	exists := func(ctx context.Context) error {
		_, err := p.client.ServiceClient().NewContainerClient(p.container).GetProperties(ctx, nil)
		return err
	}
	create := func(ctx context.Context) error {
		_, err := p.client.CreateContainer(ctx, p.container, nil)
		return err
	}
	return ensureContainer(ctx, p.container, exists, create)
}

// ensureContainer holds the check-then-create decision, factored out so the
// logic is testable without a live account. A container that already exists
// is a no-op; creation losing a race to another writer is too.
func ensureContainer(ctx context.Context, name string, exists, create func(context.Context) error) error {
	err := exists(ctx)
	if err == nil {
		log.Debug().
			Str("action", "azure_container_ensure").
			Str("container", name).
			Msg("container exists")
		return nil
	}
	if !bloberror.HasCode(err, bloberror.ContainerNotFound) {
		return fmt.Errorf("container %q: %w", name, err)
	}
	if err := create(ctx); err != nil {
		if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create container %q: %w", name, err)
	}
	log.Info().
		Str("action", "azure_container_ensure").
		Str("container", name).
		Msg("container created")
	return nil
}
