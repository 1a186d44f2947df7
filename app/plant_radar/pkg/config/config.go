package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Vision      VisionConfig      `yaml:"vision"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Telegram    TelegramConfig    `yaml:"telegram"`
}

// VisionConfig 视觉模型相关配置
type VisionConfig struct {
	Provider      string       `yaml:"provider"` // "gemini" | "openai"
	Gemini        GeminiConfig `yaml:"gemini"`
	OpenAI        OpenAIConfig `yaml:"openai"`
	Timeout       int          `yaml:"timeout"`         // 秒
	MaxImageBytes int64        `yaml:"max_image_bytes"` // 上传图片大小上限
}

// GeminiConfig Gemini 配置
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// OpenAIConfig OpenAI 兼容协议配置
type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// TelegramConfig Telegram 机器人配置
type TelegramConfig struct {
	Token string `yaml:"token"`
	Debug bool   `yaml:"debug"`
}

const (
	DefaultProvider      = "gemini"
	DefaultGeminiModel   = "gemini-1.5-flash"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultTimeout       = 60
	DefaultMaxImageBytes = 10 << 20
	DefaultRPM           = 60
	DefaultQPS           = 1
)

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyEnv 环境变量覆盖密钥，避免把密钥写进配置文件
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Vision.Gemini.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Vision.OpenAI.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
}

// ApplyDefaults 填充未配置的字段
func (c *Config) ApplyDefaults() {
	if c.Vision.Provider == "" {
		// 只配置了 OpenAI 密钥时默认使用 OpenAI
		if c.Vision.Gemini.APIKey == "" && c.Vision.OpenAI.APIKey != "" {
			c.Vision.Provider = "openai"
		} else {
			c.Vision.Provider = DefaultProvider
		}
	}
	if c.Vision.Gemini.Model == "" {
		c.Vision.Gemini.Model = DefaultGeminiModel
	}
	if c.Vision.OpenAI.Model == "" {
		c.Vision.OpenAI.Model = DefaultOpenAIModel
	}
	if c.Vision.Timeout <= 0 {
		c.Vision.Timeout = DefaultTimeout
	}
	if c.Vision.MaxImageBytes <= 0 {
		c.Vision.MaxImageBytes = DefaultMaxImageBytes
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = DefaultRPM
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = DefaultQPS
	}
}
