// Package config 提供配置加载单元测试
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fawazbashr/manus-bot/internal/testutil"
)

// ========== Load 测试 ==========

func TestLoadFromEnvWithDefaults(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	t.Setenv("MANUS_BOT_TELEGRAM_BOTTOKEN", "123:abc")
	t.Setenv("MANUS_BOT_AI_APIKEY", "sk-test")

	cfg, err := Load("")
	assert.NoError(err)

	assert.Equal("123:abc", cfg.Telegram.BotToken)
	assert.Equal("sk-test", cfg.AI.APIKey)

	// 默认值
	assert.Equal("manus-bot", cfg.App.Name)
	assert.Equal(8080, cfg.Server.Port)
	assert.Equal(60, cfg.Telegram.PollTimeout)
	assert.False(cfg.Telegram.WebhookEnabled)
	assert.Equal("dall-e-3", cfg.AI.ImageModel)
	assert.Equal("1024x1024", cfg.AI.ImageSize)
	assert.Equal(DefaultSystemPrompt, cfg.AI.SystemPrompt)
	assert.Equal(40, cfg.Session.MaxHistoryMessages)
	assert.Equal(0, cfg.Session.IdleTTLSeconds)
}

func TestLoadMissingBotToken(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	t.Setenv("MANUS_BOT_TELEGRAM_BOTTOKEN", "")
	t.Setenv("MANUS_BOT_AI_APIKEY", "sk-test")

	_, err := Load("")
	assert.ErrorContains(err, "telegram.botToken is required")
}

func TestLoadMissingAPIKey(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	t.Setenv("MANUS_BOT_TELEGRAM_BOTTOKEN", "123:abc")
	t.Setenv("MANUS_BOT_AI_APIKEY", "")

	_, err := Load("")
	assert.ErrorContains(err, "ai.apiKey is required")
}

func TestLoadFromFile(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	t.Setenv("MANUS_BOT_TELEGRAM_BOTTOKEN", "")
	t.Setenv("MANUS_BOT_AI_APIKEY", "")

	content := `
app:
  name: manus-bot-test
telegram:
  botToken: "456:def"
  webhookEnabled: true
  webhookSecret: "hook-secret"
ai:
  apiKey: "sk-file"
  baseURL: "https://example.com/v1"
session:
  maxHistoryMessages: 10
models:
  - alias: gemini
    modelID: gemini-2.5-flash
    default: true
  - alias: gpt
    modelID: gpt-4.1-mini
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	assert.NoError(err)

	assert.Equal("manus-bot-test", cfg.App.Name)
	assert.Equal("456:def", cfg.Telegram.BotToken)
	assert.True(cfg.Telegram.WebhookEnabled)
	assert.Equal("hook-secret", cfg.Telegram.WebhookSecret)
	assert.Equal("sk-file", cfg.AI.APIKey)
	assert.Equal("https://example.com/v1", cfg.AI.BaseURL)
	assert.Equal(10, cfg.Session.MaxHistoryMessages)

	assert.Equal(2, len(cfg.Models))
	assert.Equal("gemini", cfg.Models[0].Alias)
	assert.True(cfg.Models[0].Default)
}

func TestLoadFileNotFound(t *testing.T) {
	assert := testutil.NewAssertHelper(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(err, "failed to read config")
}

func TestGetAddr(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	s := ServerConfig{Host: "127.0.0.1", Port: 9090}
	assert.Equal("127.0.0.1:9090", s.GetAddr())
}
