package domain

import (
	"time"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/model"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
)

// DiagnoseReq 诊断请求：multipart 的 image 字段或 JSON 的 image_b64
type DiagnoseReq struct {
	ImageB64 string `json:"image_b64"`
	Image    []byte `json:"-"`
}

// InterpretReq 文本解析请求
type InterpretReq struct {
	Text string `json:"text"`
}

// Group 一个展示分组
type Group struct {
	Key   report.GroupKey `json:"key"`
	Title string          `json:"title"`
	Cards []report.Card   `json:"cards"`
}

// Report 解析结果视图
type Report struct {
	Structured    bool             `json:"structured"`
	Raw           string           `json:"raw"`
	Severity      report.Severity  `json:"severity"`
	SeverityLabel string           `json:"severity_label,omitempty"`
	Urgency       report.Urgency   `json:"urgency"`
	UrgencyLabel  string           `json:"urgency_label,omitempty"`
	Sections      []report.Section `json:"sections"`
	Groups        []Group          `json:"groups"`
}

// InterpretReply 文本解析响应
type InterpretReply struct {
	Report *Report `json:"report"`
}

// DiagnosisReply 诊断响应
type DiagnosisReply struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Provider  string      `json:"provider"`
	Model     string      `json:"model"`
	Image     model.Image `json:"image"`
	Report    *Report     `json:"report"`
}

// NewReport 把解析结果转换为按展示顺序排列的视图，空分组不输出
func NewReport(in *report.Interpretation) *Report {
	sev := in.Severity()
	urg := report.UrgencyOf(sev)
	r := &Report{
		Structured:    in.Structured(),
		Raw:           in.Raw,
		Severity:      sev,
		SeverityLabel: sev.Label(),
		Urgency:       urg,
		UrgencyLabel:  urg.Label(),
		Sections:      in.Sections,
		Groups:        make([]Group, 0, len(report.GroupOrder)),
	}
	for _, k := range report.GroupOrder {
		cards := in.GroupCards(k)
		if len(cards) == 0 {
			continue
		}
		r.Groups = append(r.Groups, Group{Key: k, Title: k.Title(), Cards: cards})
	}
	return r
}

// NewDiagnosisReply 诊断结果 -> 响应
func NewDiagnosisReply(d *model.Diagnosis) *DiagnosisReply {
	return &DiagnosisReply{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		Provider:  d.Provider,
		Model:     d.Model,
		Image:     d.Image,
		Report:    NewReport(d.Report),
	}
}
