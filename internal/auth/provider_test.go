package auth

import (
	"testing"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/config"
)

func TestNew_MethodSelection(t *testing.T) {
	cases := []struct {
		method string
		want   any
	}{
		{"", &defaultProvider{}},
		{"default", &defaultProvider{}},
		{"managed_identity", &managedIdentityProvider{}},
	}
	for _, c := range cases {
		p, err := New(config.Config{Auth: config.AuthConfig{Method: c.method}})
		if err != nil {
			t.Fatalf("method %q: unexpected error: %v", c.method, err)
		}
		switch c.want.(type) {
		case *defaultProvider:
			if _, ok := p.(*defaultProvider); !ok {
				t.Fatalf("method %q: got %T", c.method, p)
			}
		case *managedIdentityProvider:
			if _, ok := p.(*managedIdentityProvider); !ok {
				t.Fatalf("method %q: got %T", c.method, p)
			}
		}
	}
}

func TestNew_ClientSecretRequiresAllFields(t *testing.T) {
	_, err := New(config.Config{Auth: config.AuthConfig{
		Method:   "client_secret",
		ClientID: "app-id",
		// tenant and secret missing
	}})
	if err == nil {
		t.Fatal("expected error for incomplete service principal config")
	}

	p, err := New(config.Config{Auth: config.AuthConfig{
		Method:       "client_secret",
		ClientID:     "app-id",
		ClientSecret: "app-secret",
		TenantID:     "tenant",
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*clientSecretProvider); !ok {
		t.Fatalf("got %T, want clientSecretProvider", p)
	}
}

func TestNew_UnsupportedMethod(t *testing.T) {
	if _, err := New(config.Config{Auth: config.AuthConfig{Method: "ntlm"}}); err == nil {
		t.Fatal("expected error for unsupported method")
	}
}
