package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/sisbi-dashboard/internal/logger"
	"github.com/02loveslollipop/sisbi-dashboard/internal/pipeline"
	"github.com/02loveslollipop/sisbi-dashboard/internal/sisbi"
	"github.com/02loveslollipop/sisbi-dashboard/services/snapshot/internal/config"
	"github.com/02loveslollipop/sisbi-dashboard/services/snapshot/internal/db"
	"github.com/02loveslollipop/sisbi-dashboard/services/snapshot/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer appLog.Sync()

	if err := run(cfg, appLog); err != nil {
		appLog.Fatal("snapshot failed", "error", err)
	}
}

func run(cfg config.Config, appLog *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, 2*cfg.RequestTimeout+30*time.Second)
	defer cancel()

	runID := uuid.New()
	runLog := appLog.With("run_id", runID.String())
	capturedAt := time.Now().UTC().Truncate(time.Second)

	// A degraded listing would store zeroed capacities, so every fetch is fatal here.
	client := sisbi.NewClient(sisbi.Config{BaseURL: cfg.SisbiBaseURL, Timeout: cfg.RequestTimeout}, runLog)
	svc := pipeline.NewService(client, pipeline.Policies{
		Establishments: pipeline.PolicyFatal,
		Capacities:     pipeline.PolicyFatal,
		Detail:         pipeline.PolicyFatal,
	}, runLog)

	listing, err := svc.List(ctx)
	if err != nil {
		return err
	}
	runLog.Info("listing fetched", "establishments", len(listing))

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	rows := snapshot.BuildRows(listing, capturedAt)
	lastMap, err := db.FetchLastSnapshots(ctx, pool, snapshot.EstablishmentIDs(rows))
	if err != nil {
		return err
	}

	pending := snapshot.FilterChanged(rows, lastMap, cfg.MinInterval, cfg.ValueEpsilon)
	if len(pending) == 0 {
		runLog.Info("no changed snapshots to insert", "captured_at", capturedAt.Format(time.RFC3339))
		return nil
	}

	runLog.Info("prepared snapshots", "pending", len(pending), "candidates", len(rows), "dry_run", cfg.DryRun)

	if cfg.DryRun {
		for _, row := range pending {
			runLog.Info("dry-run: would insert snapshot", "row", snapshot.Describe(row))
		}
		return nil
	}

	if err := db.InsertSnapshots(ctx, pool, runID, pending); err != nil {
		return err
	}

	runLog.Info("inserted snapshots", "count", len(pending))
	return nil
}
