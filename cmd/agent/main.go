package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go-jobwatch-agent/internal/agent"
	"go-jobwatch-agent/internal/config"
	"go-jobwatch-agent/internal/dedup"
	"go-jobwatch-agent/internal/notify"
	"go-jobwatch-agent/internal/source"
)

// Exit codes: 0 all deliveries succeeded, 1 hard failure (config,
// source, final persist), 2 partial failure (some deliveries failed).
const (
	exitHardFailure    = 1
	exitPartialFailure = 2
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config")
	flag.Parse()

	//load config, fail fast before any fetch
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("❌ Invalid configuration: %v", err)
		os.Exit(exitHardFailure)
	}
	log.Printf("🔧 Config loaded. Include keywords: %v", cfg.IncludeKeywords)

	//one run must never hang a scheduled invocation
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	//pick the sent-job store backend
	var store dedup.Store
	if cfg.DatabaseURL != "" {
		pg, err := dedup.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("❌ Failed to connect sent-job database: %v", err)
			os.Exit(exitHardFailure)
		}
		defer pg.Close()
		store = pg
		log.Println("🗄️ Using Postgres sent-job store")
	} else {
		store = dedup.NewFileStore(cfg.StatePath)
	}

	//pick the delivery channel
	var notifier notify.Notifier
	var tg *notify.Telegram
	switch cfg.Notifier {
	case "telegram":
		var err error
		tg, err = notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("❌ Failed to init Telegram notifier: %v", err)
			os.Exit(exitHardFailure)
		}
		notifier = tg
	default:
		notifier = notify.NewDiscord(cfg.WebhookURL)
	}
	log.Printf("🤖 Notifier: %s", notifier.Name())

	a := &agent.Agent{
		Source:          source.NewRemoteOK(cfg.SourceURL),
		Store:           store,
		Notifier:        notifier,
		IncludeKeywords: cfg.IncludeKeywords,
		ExcludeKeywords: cfg.ExcludeKeywords,
		MaxPerRun:       cfg.MaxPerRun,
		Freshness:       time.Duration(cfg.FreshnessHours) * time.Hour,
	}

	log.Println("🚀 Starting job watch run...")
	summary, runErr := a.Run(ctx)

	log.Printf("📊 Run statistics: %s", summary)

	if tg != nil && summary.Notified > 0 {
		if err := tg.SendStatus(fmt.Sprintf("Run finished: %s", summary)); err != nil {
			log.Printf("⚠️ Failed to send status to Telegram: %v", err)
		}
	}

	if runErr != nil {
		log.Printf("❌ Run failed: %v", runErr)
		os.Exit(exitHardFailure)
	}
	if summary.Failed > 0 {
		log.Printf("⚠️ Run finished with %d failed deliveries", summary.Failed)
		os.Exit(exitPartialFailure)
	}
	log.Printf("🏁 Complete! Sent %d new job(s)", summary.Notified)
}
