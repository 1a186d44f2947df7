package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/model"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
)

func diagnosisOf(raw string) *model.Diagnosis {
	return &model.Diagnosis{Report: report.Interpret(raw)}
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage(diagnosisOf(`**DISEASE/ISSUE DETECTED:**
- Powdery mildew <Erysiphe>
- Severity: mild
**PLANT IDENTIFICATION:**
- Squash & zucchini
**TREATMENT RECOMMENDATIONS:**
Organic
- Milk spray`))

	want := []string{
		"<b>Mild</b> · Monitor Closely",
		"<b>PLANT IDENTIFICATION</b>",
		"• Squash &amp; zucchini",
		"<b>DIAGNOSIS</b>",
		"• Powdery mildew &lt;Erysiphe&gt;",
		"<b>TREATMENT RECOMMENDATIONS</b>",
		"<b>Organic</b>",
		"• Milk spray",
	}
	pos := 0
	for _, w := range want {
		i := strings.Index(msg[pos:], w)
		if i < 0 {
			t.Fatalf("message missing %q after offset %d:\n%s", w, pos, msg)
		}
		pos += i + len(w)
	}
}

func TestFormatMessageFallbacks(t *testing.T) {
	tests := []struct {
		name string
		d    *model.Diagnosis
		want string
	}{
		{"nil", nil, noAnalysis},
		{"no report", &model.Diagnosis{}, noAnalysis},
		{"blank", diagnosisOf("  "), noAnalysis},
		{"unstructured", diagnosisOf("Not a plant <img>"), "Not a plant &lt;img&gt;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMessage(tt.d); got != tt.want {
				t.Errorf("FormatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMessageTruncates(t *testing.T) {
	var b strings.Builder
	b.WriteString("**SYMPTOMS OBSERVED:**\n")
	for i := 0; i < 400; i++ {
		b.WriteString("- yellow spots on the lower leaves\n")
	}
	msg := FormatMessage(diagnosisOf(b.String()))
	if n := utf8.RuneCountInString(msg); n > maxMessageRunes {
		t.Errorf("message has %d runes, limit %d", n, maxMessageRunes)
	}
	if !strings.HasSuffix(msg, "\n…") {
		t.Errorf("truncated message should end with ellipsis: %q", msg[len(msg)-20:])
	}
	if strings.Count(msg, "<b>") != strings.Count(msg, "</b>") {
		t.Errorf("unbalanced tags")
	}

	long := diagnosisOf(strings.Repeat("é", maxMessageRunes+10))
	if n := utf8.RuneCountInString(FormatMessage(long)); n != maxMessageRunes {
		t.Errorf("raw message has %d runes, want %d", n, maxMessageRunes)
	}
}
