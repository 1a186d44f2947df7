package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
)

// NoAnalysis 诊断文本为空时的提示
const NoAnalysis = "No analysis received"

// Theme 终端渲染样式
type Theme struct {
	Group   lipgloss.Style
	Title   lipgloss.Style
	Heading lipgloss.Style
	Bullet  lipgloss.Style
	Hint    lipgloss.Style
	Card    lipgloss.Style
	Raw     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Group:   lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
		Title:   lipgloss.NewStyle().Bold(true),
		Heading: lipgloss.NewStyle().Bold(true).Faint(true),
		Bullet:  lipgloss.NewStyle().PaddingLeft(1),
		Hint:    lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Raw: lipgloss.NewStyle().Padding(1, 2),
	}
}

// SeverityColor 徽章颜色：严重红、中度橙、轻度黄、健康绿、未知灰
func SeverityColor(s report.Severity) lipgloss.Color {
	switch s {
	case report.SeveritySevere:
		return lipgloss.Color("9")
	case report.SeverityModerate:
		return lipgloss.Color("208")
	case report.SeverityMild:
		return lipgloss.Color("11")
	case report.SeverityHealthy:
		return lipgloss.Color("10")
	default:
		return lipgloss.Color("8")
	}
}

// Terminal 把解析结果渲染为终端卡片。width <= 0 时不限制卡片宽度。
func Terminal(in *report.Interpretation, width int) string {
	return DefaultTheme().Render(in, width)
}

// Render 按分组顺序输出卡片；没有可识别段落时输出原文
func (t Theme) Render(in *report.Interpretation, width int) string {
	if in == nil || strings.TrimSpace(in.Raw) == "" {
		return t.Hint.Render(NoAnalysis) + "\n"
	}
	if !in.Structured() {
		return t.Raw.Render(strings.TrimSpace(in.Raw)) + "\n"
	}

	card := t.Card
	if width > 0 {
		// 边框各占 1 列
		card = card.Width(width - 2)
	}

	var b strings.Builder
	if sev := in.Severity(); sev != report.SeverityNone {
		b.WriteString(t.badge(sev))
		b.WriteString("  ")
		b.WriteString(t.Hint.Render(report.UrgencyOf(sev).Label()))
		b.WriteString("\n")
	}
	for _, key := range report.GroupOrder {
		cards := in.GroupCards(key)
		if len(cards) == 0 {
			continue
		}
		b.WriteString(t.Group.Render(key.Title()))
		b.WriteString("\n")
		for _, c := range cards {
			b.WriteString(card.Render(t.cardBody(c)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (t Theme) badge(s report.Severity) string {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("0")).
		Background(SeverityColor(s)).
		Render(s.Label())
}

func (t Theme) cardBody(c report.Card) string {
	lines := []string{t.Title.Render(c.Title)}
	if c.Category == report.CategoryDiseaseOrIssue && c.Severity != report.SeverityNone {
		lines[0] += " " + t.badge(c.Severity)
	}
	for _, it := range c.Items {
		switch it.Kind {
		case report.ItemBullet:
			lines = append(lines, t.Bullet.Render("• "+it.Text))
		default:
			lines = append(lines, t.Heading.Render(it.Text))
		}
	}
	return strings.Join(lines, "\n")
}
