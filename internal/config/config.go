// Package config 提供应用配置加载
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Telegram TelegramConfig
	AI       AIConfig
	Session  SessionConfig
	Models   []ModelConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Environment string
	Version     string
	Debug       bool
}

// ServerConfig HTTP 服务器配置（健康检查 / Webhook 接收）
type ServerConfig struct {
	Host         string
	Port         int
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

// TelegramConfig Telegram 配置
type TelegramConfig struct {
	// BotToken Bot API 令牌，通常通过 MANUS_BOT_TELEGRAM_BOTTOKEN 注入
	BotToken string
	// Debug 开启 Bot API 调试日志
	Debug bool
	// PollTimeout Long Polling 超时（秒）
	PollTimeout int
	// WebhookEnabled 开启后由 HTTP 服务器接收更新（push 模式），否则使用 Long Polling
	WebhookEnabled bool
	// WebhookSecret Webhook 的 secret token（X-Telegram-Bot-Api-Secret-Token）
	WebhookSecret string
}

// AIConfig AI 配置
type AIConfig struct {
	// APIKey OpenAI 兼容接口的密钥
	APIKey string
	// BaseURL OpenAI 兼容接口地址（留空使用官方地址）
	BaseURL string
	// SystemPrompt 会话的系统人设消息
	SystemPrompt string
	// ImageModel 图片生成模型
	ImageModel string
	// ImageSize 图片尺寸
	ImageSize string
}

// SessionConfig 会话管理配置
type SessionConfig struct {
	// MaxHistoryMessages 单会话历史消息上限（不含系统消息），0 表示不限制
	MaxHistoryMessages int
	// IdleTTLSeconds 空闲会话回收时间（秒），0 表示不回收
	IdleTTLSeconds int
	// CleanupIntervalSeconds 回收检查间隔（秒）
	CleanupIntervalSeconds int
}

// ModelConfig 模型注册表条目
type ModelConfig struct {
	Alias       string
	ModelID     string
	Description string
	Default     bool
}

var globalConfig *Config

// Load 加载配置
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	setDefaults(v)

	// 环境变量
	v.SetEnvPrefix("MANUS_BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("telegram.botToken is required")
	}
	if cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("ai.apiKey is required")
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded")
	}
	return globalConfig
}

// GetAddr 获取服务器地址
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultSystemPrompt 默认系统人设（阿拉伯语助手）
const DefaultSystemPrompt = "أنت بوت ذكاء اصطناعي عربي متطور يعمل بتقنية Manus AI. مهمتك هي الإجابة على استفسارات المستخدمين بأسلوب ودود ومفيد وتقديم المساعدة في التلخيص والترجمة وتوليد الصور. يجب عليك استخدام اللغة العربية الفصحى قدر الإمكان."

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "manus-bot")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", false)

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)

	// Telegram
	// botToken 等敏感项注册空默认值，Unmarshal 才能读到对应环境变量
	v.SetDefault("telegram.botToken", "")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.pollTimeout", 60)
	v.SetDefault("telegram.webhookEnabled", false)
	v.SetDefault("telegram.webhookSecret", "")

	// AI
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.baseURL", "")
	v.SetDefault("ai.systemPrompt", DefaultSystemPrompt)
	v.SetDefault("ai.imageModel", "dall-e-3")
	v.SetDefault("ai.imageSize", "1024x1024")

	// Session
	v.SetDefault("session.maxHistoryMessages", 40)
	v.SetDefault("session.idleTTLSeconds", 0)
	v.SetDefault("session.cleanupIntervalSeconds", 600)
}
