// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultSourceURL = "https://remoteok.com/api"
	defaultStatePath = "sent_jobs.json"
	defaultMaxPerRun = 10
)

type Config struct {
	//Search criteria
	IncludeKeywords []string `yaml:"include_keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	FreshnessHours  int      `yaml:"freshness_hours"` // 0 disables the window
	//Run limits
	MaxPerRun int `yaml:"max_per_run"`
	//Source and state
	SourceURL string `yaml:"source_url"`
	StatePath string `yaml:"state_path"`
	//Delivery channel: "discord" or "telegram"
	Notifier       string `yaml:"notifier"`
	WebhookURL     string `env:"JOB_WEBHOOK_URL"`
	TelegramToken  string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`
	//Optional Postgres-backed sent-job store
	DatabaseURL string `env:"DATABASE_URL"`
}

// Load reads the YAML config at path plus environment overrides and
// returns a validated Config. Invalid configuration fails here, before
// anything is fetched or sent.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	//Override with env vars
	cfg.WebhookURL = os.Getenv("JOB_WEBHOOK_URL")
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.SourceURL == "" {
		cfg.SourceURL = defaultSourceURL
	}
	if cfg.StatePath == "" {
		cfg.StatePath = defaultStatePath
	}
	if cfg.MaxPerRun == 0 {
		cfg.MaxPerRun = defaultMaxPerRun
	}
	if cfg.Notifier == "" {
		if cfg.TelegramToken != "" {
			cfg.Notifier = "telegram"
		} else {
			cfg.Notifier = "discord"
		}
	}

	//Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces the invariants a run relies on. An empty include
// list would match everything or nothing depending on interpretation,
// so it is rejected outright rather than guessed at.
func (c *Config) validate() error {
	if len(nonEmpty(c.IncludeKeywords)) == 0 {
		return fmt.Errorf("at least one include keyword is required")
	}
	if c.MaxPerRun < 1 {
		return fmt.Errorf("max_per_run must be a positive integer, got %d", c.MaxPerRun)
	}
	if c.FreshnessHours < 0 {
		return fmt.Errorf("freshness_hours must not be negative, got %d", c.FreshnessHours)
	}

	switch c.Notifier {
	case "discord":
		if c.WebhookURL == "" {
			return fmt.Errorf("JOB_WEBHOOK_URL is required for the discord notifier")
		}
	case "telegram":
		if c.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is required for the telegram notifier")
		}
		if c.TelegramChatID == 0 {
			return fmt.Errorf("TELEGRAM_CHAT_ID is required for the telegram notifier")
		}
	default:
		return fmt.Errorf("unknown notifier %q (want discord or telegram)", c.Notifier)
	}

	return nil
}

func nonEmpty(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
