package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/config"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/imageutil"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/logger"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/model"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/vision"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/vision/factory"
)

var (
	ErrEmptyImage    = errors.New("empty image")
	ErrImageTooLarge = errors.New("image too large")
	ErrEmptyAnalysis = errors.New("no analysis received")
)

const maxRetries = 3

// Engine 核心处理引擎
type Engine struct {
	analyzer      vision.Analyzer
	limiter       *rate.Limiter
	maxImageBytes int64
	baseDelay     time.Duration
	// timeout 单次模型调用的超时，<= 0 表示只受调用方 ctx 约束
	timeout time.Duration
}

// NewEngine 根据配置创建引擎实例
func NewEngine(cfg *config.Config) (*Engine, error) {
	ctx := context.Background()

	analyzer, err := factory.NewAnalyzer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("视觉模型初始化失败: %w", err)
	}

	// 初始化限流器
	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	burst := cfg.Concurrency.QPS
	logger.Log.Infof("限流器已配置: Limit=%.2f req/s, Burst=%d, Provider=%s", limit, burst, cfg.Vision.Provider)

	e := New(analyzer, rate.NewLimiter(limit, burst), cfg.Vision.MaxImageBytes)
	e.timeout = time.Duration(cfg.Vision.Timeout) * time.Second
	return e, nil
}

// New 使用给定的视觉模型和限流器创建引擎。maxImageBytes <= 0 表示不限制。
func New(analyzer vision.Analyzer, limiter *rate.Limiter, maxImageBytes int64) *Engine {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Engine{
		analyzer:      analyzer,
		limiter:       limiter,
		maxImageBytes: maxImageBytes,
		baseDelay:     2 * time.Second,
	}
}

// Diagnose 校验图片、调用视觉模型并解析返回的诊断文本
func (e *Engine) Diagnose(ctx context.Context, img []byte) (*model.Diagnosis, error) {
	if len(img) == 0 {
		return nil, ErrEmptyImage
	}
	if e.maxImageBytes > 0 && int64(len(img)) > e.maxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrImageTooLarge, len(img), e.maxImageBytes)
	}

	info, err := imageutil.Inspect(img)
	if err != nil {
		return nil, err
	}
	logger.Log.Debugf("收到图片: mime=%s size=%dx%d bytes=%d", info.MIME, info.Width, info.Height, len(img))

	resp, err := e.analyze(ctx, &vision.Request{
		Prompt: DiagnosisPrompt,
		Image:  img,
		MIME:   info.MIME,
	})
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, ErrEmptyAnalysis
	}

	interp := report.Interpret(text)
	if !interp.Structured() {
		logger.Log.Warnf("模型返回的文本没有可识别的段落，将展示原文 (%d 字节)", len(text))
	}

	d := &model.Diagnosis{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Provider:  resp.Provider,
		Model:     resp.Model,
		Image: model.Image{
			MIME:   info.MIME,
			Width:  info.Width,
			Height: info.Height,
			Size:   len(img),
		},
		Report: interp,
	}
	logger.Log.Infof("诊断完成 [%s]: %d 个段落, 严重程度=%s", d.ID, len(interp.Sections), d.Severity())
	return d, nil
}

// Interpret 仅解析文本，不调用模型
func (e *Engine) Interpret(raw string) *report.Interpretation {
	return report.Interpret(raw)
}

// analyze 限流 + 对 429 做指数退避重试
func (e *Engine) analyze(ctx context.Context, req *vision.Request) (*vision.Response, error) {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := e.call(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !isRateLimited(err) {
			return nil, err
		}

		lastErr = err
		if i < maxRetries {
			delay := e.baseDelay * time.Duration(1<<i)
			logger.Log.Warnf("视觉模型限流，%s 后重试 (%d/%d): %v", delay, i+1, maxRetries, err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("failed after retries: %w", lastErr)
}

func (e *Engine) call(ctx context.Context, req *vision.Request) (*vision.Response, error) {
	if e.timeout <= 0 {
		return e.analyzer.Analyze(ctx, req)
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.analyzer.Analyze(ctx, req)
}

// Close 释放视觉模型持有的连接
func (e *Engine) Close() error {
	if c, ok := e.analyzer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "resource has been exhausted")
}
