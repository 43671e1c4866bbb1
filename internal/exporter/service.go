package exporter

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/config"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/naming"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/provider"
)

// Options controls polling.
type Options struct {
	// PollInterval between status queries (default: config.DefaultPollInterval).
	PollInterval time.Duration
}

// Result contains the target blob and the terminal operation status.
type Result struct {
	TargetURI string
	Status    Status
	Polls     int
	Timestamp time.Time
}

// Test seams — overridden in unit tests.
var (
	timeNow = func() time.Time { return time.Now().UTC() }

	wait = func(ctx context.Context, d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
)

// Run ensures the target container, submits an export of the configured
// database and polls the operation at a fixed interval until it is terminal.
// The terminal status — including Failed — is returned to the caller, not
// swallowed here. The poll loop has no attempt cap and no backoff: the
// managed operation runs for minutes and a 15s fixed tick is negligible.
func Run(ctx context.Context, cfg config.Config, store provider.Provider, client Client, opt Options) (Result, error) {
	var res Result

	if err := store.EnsureContainer(ctx); err != nil {
		return res, fmt.Errorf("ensure container: %w", err)
	}

	ts := timeNow()
	res.Timestamp = ts
	res.TargetURI = naming.TargetURI(cfg.Storage.Account, cfg.Storage.Container, cfg.SQL.Database, ts)

	log.Info().
		Str("action", "export_submit").
		Str("server", cfg.SQL.Server).
		Str("database", cfg.SQL.Database).
		Str("target", res.TargetURI).
		Msg("starting export")

	op, err := client.SubmitExport(ctx, Request{
		ResourceGroup:  cfg.ResourceGroup,
		Server:         cfg.SQL.Server,
		Database:       cfg.SQL.Database,
		AdminLogin:     cfg.SQL.AdminUser,
		AdminPassword:  cfg.SQL.AdminPassword,
		StorageKey:     cfg.Storage.Key,
		StorageKeyType: "StorageAccessKey",
		StorageURI:     res.TargetURI,
	})
	if err != nil {
		return res, fmt.Errorf("submit export: %w", err)
	}

	interval := opt.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}

	start := timeNow()
	for {
		st, err := op.Status(ctx)
		if err != nil {
			return res, fmt.Errorf("poll export status: %w", err)
		}
		res.Polls++
		if st.State.Terminal() {
			res.Status = st
			log.Info().
				Str("action", "export_poll").
				Str("database", cfg.SQL.Database).
				Str("state", string(st.State)).
				Int("polls", res.Polls).
				Dur("elapsed_ms", time.Since(start)).
				Msg("export finished")
			return res, nil
		}
		log.Info().
			Str("action", "export_poll").
			Str("database", cfg.SQL.Database).
			Int("polls", res.Polls).
			Msg("export in progress")
		if err := wait(ctx, interval); err != nil {
			return res, err
		}
	}
}
