package usecase

import (
	"context"
	stderrors "errors"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/plant_radar/app/display/internal/domain"
	"github.com/iWorld-y/plant_radar/app/display/internal/repo"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/engine"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/imageutil"
)

// DiagnosisUseCase 诊断业务逻辑
type DiagnosisUseCase struct {
	engine repo.DiagnosisEngine
	log    *log.Helper
}

// NewDiagnosisUseCase 创建诊断业务逻辑实例
func NewDiagnosisUseCase(engine repo.DiagnosisEngine, logger log.Logger) *DiagnosisUseCase {
	return &DiagnosisUseCase{engine: engine, log: log.NewHelper(logger)}
}

// Diagnose 诊断一张图片
func (uc *DiagnosisUseCase) Diagnose(ctx context.Context, img []byte) (*domain.DiagnosisReply, error) {
	d, err := uc.engine.Diagnose(ctx, img)
	if err != nil {
		return nil, uc.translate(err)
	}
	uc.log.WithContext(ctx).Infof("diagnosis %s done, severity=%s", d.ID, d.Severity())
	return domain.NewDiagnosisReply(d), nil
}

// Interpret 解析诊断文本，空文本返回非结构化的空结果
func (uc *DiagnosisUseCase) Interpret(ctx context.Context, text string) (*domain.InterpretReply, error) {
	return &domain.InterpretReply{Report: domain.NewReport(uc.engine.Interpret(text))}, nil
}

// translate 引擎错误 -> kratos 错误
func (uc *DiagnosisUseCase) translate(err error) error {
	switch {
	case stderrors.Is(err, engine.ErrEmptyImage):
		return errors.BadRequest("EMPTY_IMAGE", "Please select an image file")
	case stderrors.Is(err, engine.ErrImageTooLarge):
		return errors.New(nethttp.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", err.Error())
	case stderrors.Is(err, imageutil.ErrNotImage), stderrors.Is(err, imageutil.ErrCorruptImage):
		return errors.BadRequest("INVALID_IMAGE", "Please select a valid image file")
	case stderrors.Is(err, engine.ErrEmptyAnalysis):
		return errors.ServiceUnavailable("NO_ANALYSIS", "No analysis received")
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.GatewayTimeout("VISION_TIMEOUT", "image analysis timed out")
	default:
		uc.log.Errorf("diagnose failed: %v", err)
		return errors.ServiceUnavailable("VISION_UNAVAILABLE", "Failed to analyze image. Please try again.")
	}
}
