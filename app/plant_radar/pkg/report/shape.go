package report

import "strings"

// Shape 把段落内容转换为展示行："-" 开头的行为列表项，其余为标题行
func Shape(content string) []DisplayItem {
	lines := nonBlankLines(content)
	items := make([]DisplayItem, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "-") {
			items = append(items, Bullet(strings.TrimSpace(line[1:])))
			continue
		}
		items = append(items, Heading(line))
	}
	return items
}
