package report

// GroupKey 展示分组
type GroupKey string

const (
	GroupIdentification GroupKey = "identification"
	GroupDiagnosis      GroupKey = "diagnosis"
	GroupAnalysis       GroupKey = "analysis"
	GroupTreatment      GroupKey = "treatment"
	GroupOutlook        GroupKey = "outlook"
)

// GroupOrder 分组的展示顺序
var GroupOrder = []GroupKey{
	GroupIdentification,
	GroupDiagnosis,
	GroupAnalysis,
	GroupTreatment,
	GroupOutlook,
}

// Title 分组标题
func (k GroupKey) Title() string {
	switch k {
	case GroupIdentification:
		return "Plant Identification"
	case GroupDiagnosis:
		return "Diagnosis"
	case GroupAnalysis:
		return "Analysis Details"
	case GroupTreatment:
		return "Treatment Recommendations"
	case GroupOutlook:
		return "Prevention & Prognosis"
	default:
		return string(k)
	}
}

// GroupOf 分类 -> 分组。Unknown 不属于任何分组。
func GroupOf(c Category) (GroupKey, bool) {
	switch c {
	case CategoryIdentification:
		return GroupIdentification, true
	case CategoryDiseaseOrIssue:
		return GroupDiagnosis, true
	case CategorySymptoms, CategoryCauses:
		return GroupAnalysis, true
	case CategoryTreatment:
		return GroupTreatment, true
	case CategoryPrevention, CategoryPrognosis:
		return GroupOutlook, true
	default:
		return "", false
	}
}

// Group 按分类把段落放入分组，组内保持原文顺序。
// 分类为 Unknown 的段落不进入任何分组。返回的 map 总是包含全部分组键。
func Group(sections []Section) map[GroupKey][]Section {
	groups := make(map[GroupKey][]Section, len(GroupOrder))
	for _, k := range GroupOrder {
		groups[k] = []Section{}
	}
	for _, s := range sections {
		if k, ok := GroupOf(CategoryOf(s.Title)); ok {
			groups[k] = append(groups[k], s)
		}
	}
	return groups
}
