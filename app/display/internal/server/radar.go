package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/plant_radar/app/display/internal/conf"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/config"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/engine"
	prLogger "github.com/iWorld-y/plant_radar/app/plant_radar/pkg/logger"
)

// NewRadarConfig 将 internal/conf.Radar 转换为 pkg/config.Config，并应用环境变量与默认值
func NewRadarConfig(c *conf.Radar) *config.Config {
	cfg := &config.Config{}
	if c != nil {
		if v := c.Vision; v != nil {
			cfg.Vision.Provider = v.Provider
			cfg.Vision.Timeout = int(v.Timeout)
			cfg.Vision.MaxImageBytes = v.MaxImageBytes
			if v.Gemini != nil {
				cfg.Vision.Gemini = config.GeminiConfig{APIKey: v.Gemini.ApiKey, Model: v.Gemini.Model}
			}
			if v.Openai != nil {
				cfg.Vision.OpenAI = config.OpenAIConfig{BaseURL: v.Openai.BaseUrl, APIKey: v.Openai.ApiKey, Model: v.Openai.Model}
			}
		}
		if c.Log != nil {
			cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
		}
		if c.Concurrency != nil {
			cfg.Concurrency = config.ConcurrencyConfig{QPS: int(c.Concurrency.Qps), RPM: int(c.Concurrency.Rpm)}
		}
	}
	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	return cfg
}

// NewDiagnosisEngine 初始化 plant_radar 诊断引擎
func NewDiagnosisEngine(c *conf.Radar, logger log.Logger) (*engine.Engine, func(), error) {
	cfg := NewRadarConfig(c)

	// 初始化日志
	if err := prLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init plant_radar logger: %v", err)
		_ = prLogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up plant_radar engine")
		if err := eng.Close(); err != nil {
			log.NewHelper(logger).Errorf("Failed to close engine: %v", err)
		}
	}

	return eng, cleanup, nil
}
