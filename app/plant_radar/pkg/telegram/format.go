package telegram

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/model"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
)

// Telegram 单条消息上限 4096，留出余量
const maxMessageRunes = 3900

const noAnalysis = "No analysis received"

// FormatMessage 把诊断结果格式化为 Telegram HTML 消息
func FormatMessage(d *model.Diagnosis) string {
	if d == nil || d.Report == nil || strings.TrimSpace(d.Report.Raw) == "" {
		return noAnalysis
	}
	in := d.Report
	if !in.Structured() {
		return html.EscapeString(truncate(strings.TrimSpace(in.Raw), maxMessageRunes))
	}

	lines := []string{"<b>🌿 Plant Diagnosis</b>"}
	if sev := in.Severity(); sev != report.SeverityNone {
		line := "<b>" + sev.Label() + "</b>"
		if u := report.UrgencyOf(sev).Label(); u != "" {
			line += " · " + u
		}
		lines = append(lines, line)
	}

	for _, key := range report.GroupOrder {
		cards := in.GroupCards(key)
		if len(cards) == 0 {
			continue
		}
		lines = append(lines, "", "<b>"+html.EscapeString(strings.ToUpper(key.Title()))+"</b>")
		for _, c := range cards {
			lines = append(lines, "<i>"+html.EscapeString(c.Title)+"</i>")
			for _, it := range c.Items {
				text := html.EscapeString(it.Text)
				if it.Kind == report.ItemBullet {
					lines = append(lines, "• "+text)
				} else {
					lines = append(lines, "<b>"+text+"</b>")
				}
			}
		}
	}
	return joinWithin(lines, maxMessageRunes)
}

// joinWithin 按行拼接，超长时整行截断，保证 HTML 标签不被截开
func joinWithin(lines []string, limit int) string {
	var b strings.Builder
	n := 0
	for i, l := range lines {
		size := utf8.RuneCountInString(l)
		if i > 0 {
			size++
		}
		if n+size > limit-2 {
			b.WriteString("\n…")
			break
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l)
		n += size
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-1]) + "…"
}
