package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/sql-backup-operator/internal/auth"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/config"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/exporter"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/logx"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/provider"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/prune"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/sqlexport"
	"github.com/Chapsvision-dev/sql-backup-operator/internal/version"

	_ "github.com/Chapsvision-dev/sql-backup-operator/internal/provider/azure"
)

// Test seams — overridden in unit tests. Keep signatures in sync with packages.
var (
	loadConfig  func() (config.Config, error)                                        = config.Load
	acquireCred func(context.Context, config.Config) (azcore.TokenCredential, error) = auth.AcquireCredential
	newProvider func(name string, session any) (provider.Provider, error)            = provider.New
	newExporter func(string, azcore.TokenCredential) (exporter.Client, error)        = func(sub string, cred azcore.TokenCredential) (exporter.Client, error) {
		return sqlexport.New(sub, cred)
	}
	exportRun func(context.Context, config.Config, provider.Provider, exporter.Client, exporter.Options) (exporter.Result, error) = exporter.Run
	pruneRun  func(context.Context, provider.Provider, prune.Options) (prune.Result, error)                                       = prune.Run
	exit      func(int)                                                                                                           = os.Exit
)

const usage = `
Usage:
  operator backup  [database]
  operator prune   [database]
  operator version | --version | -v
  operator help    | --help    | -h

Notes:
  - Configuration comes from env vars (a .env file is loaded if present):
      AZURE_SUBSCRIPTION_ID, AZURE_RESOURCE_GROUP,
      SQL_SERVER, SQL_DATABASE, SQL_ADMIN_USER, SQL_ADMIN_PASSWORD,
      AZURE_STORAGE_ACCOUNT, AZURE_STORAGE_KEY, AZURE_STORAGE_CONTAINER
  - RETENTION_DAYS > 0 enables deletion of expired backups after the export
    (default 0: keep everything).
  - Auth is selected with AZURE_AUTH_METHOD (default: "default", i.e. the
    ambient identity chain).
`

// main wires CLI -> config -> auth -> storage provider -> export/prune.
// Exit codes: 0 success, 1 runtime error, 2 usage error.
func main() {
	_ = godotenv.Load() // best-effort
	logx.InitFromEnv()

	args := os.Args[1:]
	if len(args) < 1 {
		fmt.Print(usage)
		exit(2)
	}
	action := strings.ToLower(args[0])

	// Handle version command
	if action == "version" || action == "--version" || action == "-v" {
		fmt.Printf("sql-backup-operator %s\n", version.Info())
		exit(0)
	}

	// Handle help command
	if action == "help" || action == "--help" || action == "-h" {
		fmt.Print(usage)
		exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("config error")
		exit(1)
	}
	// Optional positional override of the database name.
	if len(args) > 1 && args[1] != "" {
		cfg.SQL.Database = args[1]
	}
	log.Debug().
		Str("server", cfg.SQL.Server).
		Str("database", cfg.SQL.Database).
		Str("storage_account", cfg.Storage.Account).
		Str("container", cfg.Storage.Container).
		Str("storage_key", logx.Redact(cfg.Storage.Key)).
		Str("admin_password", logx.Redact(cfg.SQL.AdminPassword)).
		Int("retention_days", cfg.RetentionDays).
		Msg("configuration loaded")

	ctx := withSignals(context.Background())

	// Authenticate before anything else; an auth failure aborts the run.
	cred, err := acquireCred(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("action", "auth").Str("method", cfg.Auth.Method).Msg("azure auth failed")
		exit(1)
	}

	// Build the storage provider from the authenticated session.
	store, err := newProvider(cfg.StorageProvider, provider.Session{Config: cfg, Credential: cred})
	if err != nil {
		log.Error().Err(err).Str("provider", cfg.StorageProvider).Msg("provider init error")
		exit(1)
	}

	switch action {
	case "backup":
		client, err := newExporter(cfg.SubscriptionID, cred)
		if err != nil {
			log.Error().Err(err).Str("action", "export").Msg("export client init error")
			exit(1)
		}

		start := time.Now()
		res, err := exportRun(ctx, cfg, store, client, exporter.Options{PollInterval: cfg.PollInterval})
		if err != nil {
			log.Error().Err(err).Str("action", "export").Str("database", cfg.SQL.Database).Msg("export failed")
			exit(1)
		}
		if res.Status.State != exporter.StateSucceeded {
			log.Error().
				Str("action", "export").
				Str("database", cfg.SQL.Database).
				Str("state", string(res.Status.State)).
				Str("details", res.Status.Message).
				Msg("export finished in a non-success state")
			exit(1)
		}
		log.Info().
			Str("action", "export").
			Str("database", cfg.SQL.Database).
			Str("target", res.TargetURI).
			Int("polls", res.Polls).
			Dur("elapsed_ms", time.Since(start)).
			Msg("export OK")

		runPrune(ctx, cfg, store)

	case "prune":
		runPrune(ctx, cfg, store)

	default:
		fmt.Print(usage)
		exit(2)
	}
}

func runPrune(ctx context.Context, cfg config.Config, store provider.Provider) {
	start := time.Now()
	res, err := pruneRun(ctx, store, prune.Options{
		Database:      cfg.SQL.Database,
		RetentionDays: cfg.RetentionDays,
	})
	if err != nil {
		log.Error().Err(err).Str("action", "prune").Str("database", cfg.SQL.Database).Msg("prune failed")
		exit(1)
	}
	log.Info().
		Str("action", "prune").
		Str("database", cfg.SQL.Database).
		Int("deleted", len(res.Deleted)).
		Dur("elapsed_ms", time.Since(start)).
		Msg("retention pass OK")
}

func withSignals(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		<-ch
		cancel()
	}()
	return ctx
}
