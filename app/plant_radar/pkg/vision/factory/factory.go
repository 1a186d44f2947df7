package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/config"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/vision"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/vision/gemini"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/vision/openai"
)

// NewAnalyzer 根据配置创建视觉模型实例
func NewAnalyzer(ctx context.Context, cfg *config.Config) (vision.Analyzer, error) {
	provider := cfg.Vision.Provider
	if provider == "" {
		// 默认回退逻辑：有哪个密钥就用哪个
		switch {
		case cfg.Vision.Gemini.APIKey != "":
			provider = "gemini"
		case cfg.Vision.OpenAI.APIKey != "":
			provider = "openai"
		default:
			return nil, fmt.Errorf("vision provider not configured")
		}
	}

	switch provider {
	case "gemini":
		c, err := gemini.NewClient(ctx, cfg.Vision.Gemini.APIKey, cfg.Vision.Gemini.Model)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "openai":
		timeout := time.Duration(cfg.Vision.Timeout) * time.Second
		c, err := openai.NewClient(ctx, cfg.Vision.OpenAI.BaseURL, cfg.Vision.OpenAI.APIKey, cfg.Vision.OpenAI.Model, timeout)
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unknown vision provider: %s", provider)
	}
}
