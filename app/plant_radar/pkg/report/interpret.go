package report

// Card 带分类与展示行的段落
type Card struct {
	Section
	Category Category      `json:"category"`
	Severity Severity      `json:"severity"`
	Urgency  Urgency       `json:"urgency"`
	Items    []DisplayItem `json:"items"`
	// Actionable 治疗建议卡片，前端可提供逐条复制
	Actionable bool `json:"actionable"`
}

// Interpretation 一次诊断文本的完整解析结果
type Interpretation struct {
	Raw      string                 `json:"raw"`
	Sections []Section              `json:"sections"`
	Grouped  map[GroupKey][]Section `json:"grouped"`
	Cards    []Card                 `json:"cards"`
}

// Interpret 执行 切分 -> 分类 -> 分组 -> 展示行 的完整流程
func Interpret(raw string) *Interpretation {
	sections := Split(raw)
	cards := make([]Card, 0, len(sections))
	for _, s := range sections {
		c := Classify(s)
		cards = append(cards, Card{
			Section:    s,
			Category:   c.Category,
			Severity:   c.Severity,
			Urgency:    UrgencyOf(c.Severity),
			Items:      Shape(s.Content),
			Actionable: c.Category == CategoryTreatment,
		})
	}
	return &Interpretation{
		Raw:      raw,
		Sections: sections,
		Grouped:  Group(sections),
		Cards:    cards,
	}
}

// Structured 是否解析出了段落；否则应直接展示原文
func (in *Interpretation) Structured() bool {
	return len(in.Sections) > 0
}

// GroupCards 某个分组下的卡片，保持原文顺序
func (in *Interpretation) GroupCards(key GroupKey) []Card {
	var out []Card
	for _, c := range in.Cards {
		if k, ok := GroupOf(c.Category); ok && k == key {
			out = append(out, c)
		}
	}
	return out
}

// Severity 第一个病害段落的严重程度
func (in *Interpretation) Severity() Severity {
	for _, c := range in.Cards {
		if c.Category == CategoryDiseaseOrIssue {
			return c.Severity
		}
	}
	return SeverityNone
}
