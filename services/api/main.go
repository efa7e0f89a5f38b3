package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/02loveslollipop/sisbi-dashboard/internal/logger"
	"github.com/02loveslollipop/sisbi-dashboard/internal/pipeline"
	"github.com/02loveslollipop/sisbi-dashboard/internal/sisbi"
	"github.com/02loveslollipop/sisbi-dashboard/services/api/config"
	"github.com/02loveslollipop/sisbi-dashboard/services/api/db"
	httpserver "github.com/02loveslollipop/sisbi-dashboard/services/api/http"
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

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := sisbi.NewClient(sisbi.Config{
		BaseURL:  cfg.SisbiBaseURL,
		Timeout:  cfg.RequestTimeout,
		CacheTTL: cfg.CacheTTL,
	}, appLog)
	svc := pipeline.NewService(client, cfg.Policies, appLog)

	var history httpserver.HistoryStore
	if cfg.DatabaseURL != "" {
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			appLog.Fatal("db connection error", "error", err)
		}
		defer store.Close()
		history = store
	} else {
		appLog.Info("DATABASE_URL not set; history endpoint disabled")
	}

	srv := httpserver.New(cfg, svc, history, appLog)
	appLog.Info("REST API listening",
		"addr", cfg.ListenAddr(),
		"upstream", cfg.SisbiBaseURL,
		"cache_ttl", cfg.CacheTTL.String(),
		"establishments_policy", cfg.Policies.Establishments,
		"capacities_policy", cfg.Policies.Capacities,
		"detail_policy", cfg.Policies.Detail)

	if err := srv.Run(ctx); err != nil {
		appLog.Fatal("server error", "error", err)
	}
}
