package provider

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/config"
)

// BlobKind is the storage type of a blob. Only block blobs are ever pruned.
type BlobKind string

const (
	KindBlock   BlobKind = "BlockBlob"
	KindPage    BlobKind = "PageBlob"
	KindAppend  BlobKind = "AppendBlob"
	KindUnknown BlobKind = "Unknown"
)

// Blob is a read-only snapshot of one listed blob.
type Blob struct {
	Name         string
	LastModified time.Time // UTC
	Kind         BlobKind
}

// Provider defines the contract for blob storage backends used by the
// operator. Names are full keys within the configured container.
type Provider interface {
	// EnsureContainer verifies the target container exists, creating it if
	// absent. A pre-existing container is a no-op.
	EnsureContainer(ctx context.Context) error

	// List returns all blobs whose name starts with prefix.
	List(ctx context.Context, prefix string) ([]Blob, error)

	// Delete removes one blob by name.
	Delete(ctx context.Context, name string) error

	// Name returns the provider identifier (e.g. "azure").
	Name() string
}

// Session bundles what a factory needs to build a provider: the loaded
// config and the ambient token credential acquired at startup. The
// credential is a read-only capability; providers never mutate it.
type Session struct {
	Config     config.Config
	Credential azcore.TokenCredential
}
