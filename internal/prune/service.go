package prune

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/naming"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/provider"
)

// Options controls which backups are eligible for deletion.
type Options struct {
	Database string
	// RetentionDays <= 0 disables pruning: no storage call is made at all.
	RetentionDays int
}

// Result reports what one prune pass did.
type Result struct {
	Cutoff  time.Time
	Scanned int
	Deleted []string
}

// Test seam — overridden in unit tests.
var timeNow = func() time.Time { return time.Now().UTC() }

// Run deletes expired backups for one database. A blob is deleted only when
// all of these hold: its name is under the database's backup prefix and ends
// in the bacpac extension, it is a block blob, and it was last modified
// strictly before now minus the retention window. Page and append blobs are
// never deleted, even when expired. Deletion is fail-fast: the first delete
// error aborts the remaining deletions.
func Run(ctx context.Context, store provider.Provider, opt Options) (Result, error) {
	var res Result

	if opt.RetentionDays <= 0 {
		log.Debug().
			Str("action", "prune").
			Str("database", opt.Database).
			Int("retention_days", opt.RetentionDays).
			Msg("retention disabled, skipping prune")
		return res, nil
	}

	res.Cutoff = timeNow().Add(-time.Duration(opt.RetentionDays) * 24 * time.Hour)
	prefix := naming.Prefix(opt.Database)

	blobs, err := store.List(ctx, prefix)
	if err != nil {
		return res, fmt.Errorf("list backups: %w", err)
	}
	res.Scanned = len(blobs)

	for _, b := range blobs {
		if !expired(b, res.Cutoff) {
			continue
		}
		if err := store.Delete(ctx, b.Name); err != nil {
			return res, fmt.Errorf("delete expired backup %q: %w", b.Name, err)
		}
		log.Info().
			Str("action", "prune_delete").
			Str("blob", b.Name).
			Time("last_modified", b.LastModified).
			Msg("deleted expired backup")
		res.Deleted = append(res.Deleted, b.Name)
	}

	log.Info().
		Str("action", "prune").
		Str("database", opt.Database).
		Int("retention_days", opt.RetentionDays).
		Int("scanned", res.Scanned).
		Int("deleted", len(res.Deleted)).
		Msg("prune OK")
	return res, nil
}

func expired(b provider.Blob, cutoff time.Time) bool {
	if !strings.HasSuffix(b.Name, naming.Extension) {
		return false
	}
	if b.Kind != provider.KindBlock {
		return false
	}
	return b.LastModified.Before(cutoff)
}
