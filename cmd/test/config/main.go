package main

import (
	"fmt"
	"log"

	"go-jobwatch-agent/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("❌ Config invalid: %v", err)
	}
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Include keywords: %v\n", cfg.IncludeKeywords)
	fmt.Printf("   Exclude keywords: %v\n", cfg.ExcludeKeywords)
	fmt.Printf("   Max per run: %d\n", cfg.MaxPerRun)
	fmt.Printf("   Freshness hours: %d\n", cfg.FreshnessHours)
	fmt.Printf("   Notifier: %s\n", cfg.Notifier)
	fmt.Printf("   Source URL: %s\n", cfg.SourceURL)
	fmt.Printf("   State path: %s\n", cfg.StatePath)
}
