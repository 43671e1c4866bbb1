// Package naming derives the blob names used for database exports. The
// exporter writes under the prefix the pruner later lists, so both sides go
// through this package; building a name anywhere else risks a prune that
// silently matches nothing.
package naming

import (
	"fmt"
	"time"
)

// Extension is the archive format produced by the managed export.
const Extension = ".bacpac"

// timestampLayout gives minute precision, e.g. 202403011005.
const timestampLayout = "200601021504"

// Prefix returns the listing prefix for one database's backups:
// "<database>/<database>".
func Prefix(database string) string {
	return database + "/" + database
}

// BlobName returns the full blob key for an export taken at ts:
// "<database>/<database><YYYYMMDDHHmm>.bacpac".
func BlobName(database string, ts time.Time) string {
	return Prefix(database) + ts.UTC().Format(timestampLayout) + Extension
}

// TargetURI returns the fully-qualified blob URI handed to the export
// service. Consumers parse this format, keep it stable.
func TargetURI(account, container, database string, ts time.Time) string {
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s",
		account, container, BlobName(database, ts))
}
