package report

import "strings"

// categoryRules 标题关键词表，按顺序匹配，先命中者生效。
// 关键词与提示词中要求模型输出的大写标题保持一致，区分大小写。
var categoryRules = []struct {
	keywords []string
	category Category
}{
	{[]string{"IDENTIFICATION"}, CategoryIdentification},
	{[]string{"DISEASE", "ISSUE"}, CategoryDiseaseOrIssue},
	{[]string{"SYMPTOMS"}, CategorySymptoms},
	{[]string{"CAUSES"}, CategoryCauses},
	{[]string{"TREATMENT"}, CategoryTreatment},
	{[]string{"PREVENTION"}, CategoryPrevention},
	{[]string{"PROGNOSIS"}, CategoryPrognosis},
}

// severityRules 严重程度关键词，按优先级排列
var severityRules = []struct {
	keyword  string
	severity Severity
}{
	{"severe", SeveritySevere},
	{"moderate", SeverityModerate},
	{"mild", SeverityMild},
	{"healthy", SeverityHealthy},
}

// Classify 根据标题判定分类，根据内容提取严重程度。不会失败。
func Classify(s Section) Classification {
	return Classification{
		Category: CategoryOf(s.Title),
		Severity: SeverityOf(s.Content),
	}
}

// CategoryOf 标题 -> 分类，未命中返回 CategoryUnknown
func CategoryOf(title string) Category {
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(title, kw) {
				return rule.category
			}
		}
	}
	return CategoryUnknown
}

// SeverityOf 内容 -> 严重程度，多个关键词同时出现时取优先级最高者
func SeverityOf(content string) Severity {
	lower := strings.ToLower(content)
	for _, rule := range severityRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.severity
		}
	}
	return SeverityNone
}
