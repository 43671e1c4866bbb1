package azure

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/provider"
)

type AzureProvider struct {
	client    *azblob.Client
	account   string
	container string
	endpoint  string // e.g. https://<account>.blob.core.windows.net/
}

func (p *AzureProvider) Name() string { return "azure" }

// List walks the flat pager and snapshots name, last-modified and blob type
// for every blob under prefix.
func (p *AzureProvider) List(ctx context.Context, prefix string) ([]provider.Blob, error) {
	var out []provider.Blob
	pager := p.client.NewListBlobsFlatPager(p.container, &azblob.ListBlobsFlatOptions{
		Prefix: to.Ptr(prefix),
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blobs %q: %w", prefix, err)
		}
		for _, it := range page.Segment.BlobItems {
			if it.Name == nil || it.Properties == nil || it.Properties.LastModified == nil {
				continue
			}
			out = append(out, provider.Blob{
				Name:         *it.Name,
				LastModified: it.Properties.LastModified.UTC(),
				Kind:         kindOf(it.Properties.BlobType),
			})
		}
	}
	log.Debug().
		Str("action", "azure_list").
		Str("container", p.container).
		Str("prefix", prefix).
		Int("count", len(out)).
		Msg("list OK")
	return out, nil
}

// Delete removes one blob; base blob only, snapshots are left alone.
func (p *AzureProvider) Delete(ctx context.Context, name string) error {
	if _, err := p.client.DeleteBlob(ctx, p.container, name, nil); err != nil {
		return fmt.Errorf("delete blob %q: %w", name, err)
	}
	log.Debug().
		Str("action", "azure_delete").
		Str("container", p.container).
		Str("key", name).
		Msg("delete OK")
	return nil
}

func kindOf(t *blob.BlobType) provider.BlobKind {
	if t == nil {
		return provider.KindUnknown
	}
	switch *t {
	case blob.BlobTypeBlockBlob:
		return provider.KindBlock
	case blob.BlobTypePageBlob:
		return provider.KindPage
	case blob.BlobTypeAppendBlob:
		return provider.KindAppend
	default:
		return provider.KindUnknown
	}
}
