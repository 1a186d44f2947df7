package repo

import (
	"context"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/model"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
)

// DiagnosisEngine 诊断引擎接口，由 engine.Engine 实现
type DiagnosisEngine interface {
	// Diagnose 调用视觉模型诊断图片
	Diagnose(ctx context.Context, img []byte) (*model.Diagnosis, error)
	// Interpret 解析已有的诊断文本
	Interpret(raw string) *report.Interpretation
}
