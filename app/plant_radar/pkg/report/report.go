// Package report 把视觉模型返回的诊断文本解析为可分组、可展示的结构化段落。
//
// 包内所有函数均为纯函数，可被多个 goroutine 并发调用。
package report

// Section 诊断报告中的一个段落
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Category 段落语义分类
type Category string

const (
	CategoryIdentification Category = "identification"
	CategoryDiseaseOrIssue Category = "disease_or_issue"
	CategorySymptoms       Category = "symptoms"
	CategoryCauses         Category = "causes"
	CategoryTreatment      Category = "treatment"
	CategoryPrevention     Category = "prevention"
	CategoryPrognosis      Category = "prognosis"
	CategoryUnknown        Category = "unknown"
)

// Severity 严重程度标签
type Severity string

const (
	SeveritySevere   Severity = "severe"
	SeverityModerate Severity = "moderate"
	SeverityMild     Severity = "mild"
	SeverityHealthy  Severity = "healthy"
	SeverityNone     Severity = "none"
)

// Label 返回用于徽章展示的文案，None 返回空串
func (s Severity) Label() string {
	switch s {
	case SeveritySevere:
		return "Severe"
	case SeverityModerate:
		return "Moderate"
	case SeverityMild:
		return "Mild"
	case SeverityHealthy:
		return "Healthy"
	default:
		return ""
	}
}

// Urgency 处理紧迫度，由严重程度推导
type Urgency string

const (
	UrgencyHigh    Urgency = "high"
	UrgencyMedium  Urgency = "medium"
	UrgencyLow     Urgency = "low"
	UrgencyNone    Urgency = "none"
	UrgencyUnknown Urgency = "unknown"
)

// UrgencyOf 严重程度 -> 紧迫度
func UrgencyOf(s Severity) Urgency {
	switch s {
	case SeveritySevere:
		return UrgencyHigh
	case SeverityModerate:
		return UrgencyMedium
	case SeverityMild:
		return UrgencyLow
	case SeverityHealthy:
		return UrgencyNone
	default:
		return UrgencyUnknown
	}
}

// Label 紧迫度提示文案，none/unknown 不展示
func (u Urgency) Label() string {
	switch u {
	case UrgencyHigh:
		return "Urgent Action Required"
	case UrgencyMedium:
		return "Action Needed Soon"
	case UrgencyLow:
		return "Monitor Closely"
	default:
		return ""
	}
}

// ItemKind 展示行类型
type ItemKind string

const (
	ItemBullet  ItemKind = "bullet"
	ItemHeading ItemKind = "heading"
)

// DisplayItem 段落内容中的一行
type DisplayItem struct {
	Kind ItemKind `json:"kind"`
	Text string   `json:"text"`
}

// Bullet 构造列表项
func Bullet(text string) DisplayItem { return DisplayItem{Kind: ItemBullet, Text: text} }

// Heading 构造标题行
func Heading(text string) DisplayItem { return DisplayItem{Kind: ItemHeading, Text: text} }

// Classification 段落分类结果
type Classification struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
}
