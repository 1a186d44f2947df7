package model

import (
	"time"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
)

// Image 待诊断的图片信息
type Image struct {
	MIME   string `json:"mime"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size"`
}

// Diagnosis 一次诊断的结果，仅在内存中流转，不落库
type Diagnosis struct {
	ID        string                 `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	Provider  string                 `json:"provider"`
	Model     string                 `json:"model"`
	Image     Image                  `json:"image"`
	Report    *report.Interpretation `json:"report"`
}

// Severity 诊断的严重程度
func (d *Diagnosis) Severity() report.Severity {
	if d == nil || d.Report == nil {
		return report.SeverityNone
	}
	return d.Report.Severity()
}
