package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ColinKinloch/sadm/internal/adapter/driven/eventbus"
	githubadapter "github.com/ColinKinloch/sadm/internal/adapter/driven/github"
	"github.com/ColinKinloch/sadm/internal/adapter/driven/spool"
	sqliteadapter "github.com/ColinKinloch/sadm/internal/adapter/driven/sqlite"
	"github.com/ColinKinloch/sadm/internal/adapter/driving/listener"
	"github.com/ColinKinloch/sadm/internal/application"
	"github.com/ColinKinloch/sadm/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on a broken or invalid config).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"maintained_repos", cfg.GitHub.Maintain,
		"jobdir", cfg.Buildbot.JobDir,
		"pr_builders", cfg.Buildbot.PRBuilders,
		"journal_path", cfg.Journal.Path,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the journal database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.Journal.Path)

	// 4. Run migrations on the writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	journal := sqliteadapter.NewJournalRepo(db)
	ghClient := githubadapter.NewClient(cfg.GitHub.Token)
	submitter, err := spool.NewSubmitter(cfg.Buildbot.JobDir)
	if err != nil {
		return err
	}
	bus := eventbus.New()

	// 6. Construct the worker services.
	dispatch := application.NewDispatchService(
		ghClient,
		submitter,
		bus,
		cfg.Buildbot.PRBuilders,
		cfg.Buildbot.URL,
		cfg.FetchTimeout,
	)
	collector := application.NewCollectorService(bus, cfg.Buildbot.PRBuilders, cfg.Buildbot.FifoCIBuilders)
	journalWriter := application.NewJournalWriter(journal)

	// 7. Register listeners. The journal listener is a tap so it also
	// sees the topic each status event is published on.
	bus.Register(listener.NewPullRequestListener(dispatch, cfg.GitHub.Maintain))
	bus.Register(listener.NewManualBuildListener(dispatch, cfg.GitHub.Maintain, cfg.GitHub.RebuildCommand))
	if cfg.IRC.RebuildRepo != "" {
		bus.Register(listener.NewIRCRebuildListener(dispatch, cfg.IRC.RebuildRepo))
	}
	bus.Register(listener.NewBuildbotHookListener(collector))
	bus.Tap(listener.NewJournalListener(journalWriter).Tap)

	// 8. Start the workers under supervision and the journal pruner on
	// its schedule.
	const restartBackoff = time.Second
	go application.RunSupervised(ctx, "dispatch", restartBackoff, dispatch.Run)
	go application.RunSupervised(ctx, "collector", restartBackoff, collector.Run)
	go application.RunSupervised(ctx, "journal writer", restartBackoff, journalWriter.Run)
	go application.RunPeriodic(ctx, "journal pruner", cfg.Journal.PruneInterval, func(ctx context.Context) error {
		pruned, err := journal.Prune(ctx, time.Now().Add(-cfg.Journal.Retention))
		if err != nil {
			return err
		}
		if pruned > 0 {
			slog.Info("journal pruned", "records", pruned)
		}
		return nil
	})

	slog.Info("central started",
		"pr_builders", cfg.Buildbot.PRBuilders,
		"fifoci_builders", cfg.Buildbot.FifoCIBuilders,
		"fetch_timeout", cfg.FetchTimeout,
	)

	// 9. Wait for shutdown signal. Queues are volatile by design, so
	// there is nothing to drain.
	<-ctx.Done()
	slog.Info("shutting down")

	slog.Info("shutdown complete")
	return nil
}
