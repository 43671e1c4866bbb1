package azure

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/provider"
)

// Build the blob client from the session.
// Priority: 1) account key  2) SAS  3) ambient token credential.
func newClientFromSession(s provider.Session) (*azblob.Client, string, error) {
	account := s.Config.Storage.Account

	endpoint := os.Getenv("AZURE_BLOB_ENDPOINT")
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.blob.core.windows.net/", account)
	}

	// 1) Shared key
	if key := strings.TrimSpace(s.Config.Storage.Key); key != "" {
		cred, err := azblob.NewSharedKeyCredential(account, key)
		if err != nil {
			return nil, "", fmt.Errorf("shared key credential: %w", err)
		}
		cl, err := azblob.NewClientWithSharedKeyCredential(endpoint, cred, nil)
		return cl, endpoint, err
	}

	// 2) SAS
	if sasRaw := strings.TrimSpace(s.Config.Storage.SASToken); sasRaw != "" {
		sas := strings.TrimPrefix(sasRaw, "?")
		cl, err := azblob.NewClientWithNoCredential(endpoint+"?"+sas, nil)
		return cl, endpoint, err
	}

	// 3) Ambient token credential acquired at startup.
	if s.Credential == nil {
		return nil, "", errors.New("no storage credentials: set AZURE_STORAGE_KEY or AZURE_STORAGE_SAS, or authenticate first")
	}
	cl, err := azblob.NewClient(endpoint, s.Credential, nil)
	return cl, endpoint, err
}

func init() {
	provider.Register("azure", func(session any) (provider.Provider, error) {
		s, ok := session.(provider.Session)
		if !ok {
			return nil, fmt.Errorf("azure: invalid session type")
		}
		client, endpoint, err := newClientFromSession(s)
		if err != nil {
			return nil, err
		}
		return &AzureProvider{
			client:    client,
			account:   s.Config.Storage.Account,
			container: s.Config.Storage.Container,
			endpoint:  endpoint,
		}, nil
	})
}
