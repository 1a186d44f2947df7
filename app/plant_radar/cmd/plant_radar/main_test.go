package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
)

const analysis = `**PLANT IDENTIFICATION:**
- Tomato
**DISEASE/ISSUE DETECTED:**
- Late blight, severe
**PREVENTION TIPS:**
- Rotate crops`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInterpretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.txt")
	if err := os.WriteFile(path, []byte(analysis), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "interpret", path, "--width", "0")
	if err != nil {
		t.Fatalf("interpret error = %v", err)
	}
	for _, want := range []string{"Urgent Action Required", "Plant Identification", "• Rotate crops"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInterpretStdinJSON(t *testing.T) {
	out, err := execute(t, analysis, "interpret", "-", "--json")
	if err != nil {
		t.Fatalf("interpret error = %v", err)
	}
	var in report.Interpretation
	if err := json.Unmarshal([]byte(out), &in); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(in.Sections) != 3 {
		t.Errorf("sections = %d, want 3", len(in.Sections))
	}
	if got := in.Grouped[report.GroupOutlook]; len(got) != 1 || got[0].Title != "PREVENTION TIPS" {
		t.Errorf("outlook = %+v", got)
	}
}

func TestInterpretMissingFile(t *testing.T) {
	if _, err := execute(t, "", "interpret", filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDiagnoseRequiresImage(t *testing.T) {
	if _, err := execute(t, "", "diagnose"); err == nil {
		t.Fatal("expected argument error")
	}
}

func TestDiagnoseExplicitConfigMissing(t *testing.T) {
	img := filepath.Join(t.TempDir(), "leaf.png")
	if err := os.WriteFile(img, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "", "diagnose", img, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "无法加载配置文件") {
		t.Fatalf("error = %v", err)
	}
}
