package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JOB_WEBHOOK_URL", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("DATABASE_URL", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOB_WEBHOOK_URL", "https://discord.test/webhook")

	path := writeConfig(t, `
include_keywords: [automation, python]
exclude_keywords: [senior]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"automation", "python"}, cfg.IncludeKeywords)
	assert.Equal(t, 10, cfg.MaxPerRun)
	assert.Equal(t, 0, cfg.FreshnessHours)
	assert.Equal(t, "https://remoteok.com/api", cfg.SourceURL)
	assert.Equal(t, "sent_jobs.json", cfg.StatePath)
	assert.Equal(t, "discord", cfg.Notifier)
	assert.Equal(t, "https://discord.test/webhook", cfg.WebhookURL)
}

func TestLoadRequiresIncludeKeywords(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOB_WEBHOOK_URL", "https://discord.test/webhook")

	path := writeConfig(t, `
exclude_keywords: [senior]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include keyword")

	//all-blank include keywords are just as invalid
	path = writeConfig(t, `
include_keywords: ["", ""]
`)
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadInfersTelegramNotifier(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	path := writeConfig(t, `
include_keywords: [python]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "telegram", cfg.Notifier)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
}

func TestLoadTelegramMissingChatID(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	path := writeConfig(t, `
include_keywords: [python]
notifier: telegram
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}

func TestLoadInvalidChatID(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	path := writeConfig(t, `
include_keywords: [python]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}

func TestLoadDiscordMissingWebhook(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
include_keywords: [python]
notifier: discord
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JOB_WEBHOOK_URL")
}

func TestLoadUnknownNotifier(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
include_keywords: [python]
notifier: carrier-pigeon
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown notifier")
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveCap(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOB_WEBHOOK_URL", "https://discord.test/webhook")

	path := writeConfig(t, `
include_keywords: [python]
max_per_run: -1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_per_run")
}
