package naming

import (
	"strings"
	"testing"
	"time"
)

func TestTargetURI_Literal(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC)
	got := TargetURI("acct1", "backups", "orders", ts)
	want := "https://acct1.blob.core.windows.net/backups/orders/orders202403011005.bacpac"
	if got != want {
		t.Fatalf("TargetURI = %q, want %q", got, want)
	}
}

func TestBlobName_StartsWithPrefix(t *testing.T) {
	// The pruner lists by Prefix; every generated name must fall under it.
	ts := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	name := BlobName("orders", ts)
	if !strings.HasPrefix(name, Prefix("orders")) {
		t.Fatalf("BlobName %q does not start with prefix %q", name, Prefix("orders"))
	}
	if !strings.HasSuffix(name, Extension) {
		t.Fatalf("BlobName %q does not end with %q", name, Extension)
	}
}

func TestBlobName_MinutePrecision(t *testing.T) {
	// Seconds are dropped, timestamps are minute-precise.
	a := BlobName("db", time.Date(2024, 3, 1, 10, 5, 1, 0, time.UTC))
	b := BlobName("db", time.Date(2024, 3, 1, 10, 5, 59, 0, time.UTC))
	if a != b {
		t.Fatalf("names differ within the same minute: %q vs %q", a, b)
	}
}

func TestBlobName_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("plus2", 2*60*60)
	utc := time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC)
	if got, want := BlobName("db", utc.In(loc)), BlobName("db", utc); got != want {
		t.Fatalf("BlobName not normalized to UTC: %q vs %q", got, want)
	}
}
