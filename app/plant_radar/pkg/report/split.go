package report

import "strings"

// boldMarker 模型用来包裹段落标题的加粗标记
const boldMarker = "**"

// Split 按加粗标记把原始文本切分为 (标题, 内容) 段落序列。
// 文本中没有加粗标记时返回空切片，由调用方回退展示原文。
func Split(raw string) []Section {
	var fragments []string
	for _, f := range strings.Split(raw, boldMarker) {
		if strings.TrimSpace(f) != "" {
			fragments = append(fragments, f)
		}
	}

	sections := make([]Section, 0, len(fragments)/2)
	// 奇数个片段时最后一个没有配对，直接丢弃
	for i := 0; i+1 < len(fragments); i += 2 {
		title := cleanTitle(fragments[i])
		if title == "" {
			continue
		}
		sections = append(sections, Section{
			Title:   title,
			Content: normalizeContent(fragments[i+1]),
		})
	}
	return sections
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ":")
	return strings.TrimSpace(s)
}

// normalizeContent 去掉空行并逐行 trim，保持行序
func normalizeContent(s string) string {
	lines := nonBlankLines(s)
	return strings.Join(lines, "\n")
}

func nonBlankLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
