package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultPollInterval is the fixed delay between export status queries.
const DefaultPollInterval = 15 * time.Second

type Config struct {
	// StorageProvider selects the blob storage backend (default: azure).
	StorageProvider string

	SubscriptionID string
	ResourceGroup  string

	SQL     SQLConfig
	Storage StorageConfig
	Auth    AuthConfig

	// RetentionDays <= 0 disables pruning entirely.
	RetentionDays int
	PollInterval  time.Duration
}

type SQLConfig struct {
	Server        string
	Database      string
	AdminUser     string
	AdminPassword string // secret, never logged
}

type StorageConfig struct {
	Account   string
	Key       string // secret, never logged
	Container string
	SASToken  string
}

type AuthConfig struct {
	Method string // "default", "client_secret" or "managed_identity"

	ClientID     string
	ClientSecret string
	TenantID     string
}

// Load reads config from environment variables, applies defaults and validates.
func Load() (Config, error) {
	get := func(key, def string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return def
	}

	parseInt := func(key string, def int) int {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}

	parseDur := func(key string, def time.Duration) time.Duration {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				return d
			}
		}
		return def
	}

	cfg := Config{
		StorageProvider: strings.ToLower(get("STORAGE_PROVIDER", "azure")),

		SubscriptionID: strings.TrimSpace(get("AZURE_SUBSCRIPTION_ID", "")),
		ResourceGroup:  strings.TrimSpace(get("AZURE_RESOURCE_GROUP", "")),

		SQL: SQLConfig{
			Server:        strings.TrimSpace(get("SQL_SERVER", "")),
			Database:      strings.TrimSpace(get("SQL_DATABASE", "")),
			AdminUser:     get("SQL_ADMIN_USER", ""),
			AdminPassword: get("SQL_ADMIN_PASSWORD", ""),
		},

		Storage: StorageConfig{
			Account:   strings.TrimSpace(get("AZURE_STORAGE_ACCOUNT", "")),
			Key:       get("AZURE_STORAGE_KEY", ""),
			Container: strings.TrimSpace(get("AZURE_STORAGE_CONTAINER", "")),
			SASToken:  get("AZURE_STORAGE_SAS", ""),
		},

		Auth: AuthConfig{
			Method:       strings.ToLower(strings.TrimSpace(get("AZURE_AUTH_METHOD", "default"))),
			ClientID:     get("AZURE_CLIENT_ID", ""),
			ClientSecret: get("AZURE_CLIENT_SECRET", ""),
			TenantID:     get("AZURE_TENANT_ID", ""),
		},

		RetentionDays: parseInt("RETENTION_DAYS", 0),
		PollInterval:  parseDur("EXPORT_POLL_INTERVAL", DefaultPollInterval),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks the fields every action needs. Storage credentials are not
// required here: without a key or SAS the provider falls back to the ambient
// token credential.
func (c *Config) validate() error {
	if c.SubscriptionID == "" {
		return errors.New("AZURE_SUBSCRIPTION_ID is required")
	}
	if c.ResourceGroup == "" {
		return errors.New("AZURE_RESOURCE_GROUP is required")
	}
	if c.SQL.Server == "" || c.SQL.Database == "" {
		return errors.New("SQL_SERVER and SQL_DATABASE are required")
	}
	if c.SQL.AdminUser == "" || c.SQL.AdminPassword == "" {
		return errors.New("SQL_ADMIN_USER and SQL_ADMIN_PASSWORD are required")
	}
	if c.Storage.Account == "" || c.Storage.Container == "" {
		return errors.New("AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_CONTAINER are required")
	}
	switch c.Auth.Method {
	case "default", "managed_identity":
	case "client_secret":
		if c.Auth.ClientID == "" || c.Auth.ClientSecret == "" || c.Auth.TenantID == "" {
			return errors.New("auth method client_secret requires AZURE_CLIENT_ID, AZURE_CLIENT_SECRET and AZURE_TENANT_ID")
		}
	default:
		return errors.New("unsupported auth method: " + c.Auth.Method)
	}
	return nil
}
