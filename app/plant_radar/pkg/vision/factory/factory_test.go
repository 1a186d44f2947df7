package factory

import (
	"context"
	"testing"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/config"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/vision/gemini"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/vision/openai"
)

func TestNewAnalyzer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		vision  config.VisionConfig
		want    string
		wantErr bool
	}{
		{
			name:   "gemini",
			vision: config.VisionConfig{Provider: "gemini", Gemini: config.GeminiConfig{APIKey: "k", Model: "gemini-1.5-flash"}},
			want:   "gemini",
		},
		{
			name:   "openai",
			vision: config.VisionConfig{Provider: "openai", OpenAI: config.OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini"}, Timeout: 10},
			want:   "openai",
		},
		{
			name:   "fallback to configured key",
			vision: config.VisionConfig{OpenAI: config.OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini"}},
			want:   "openai",
		},
		{name: "nothing configured", vision: config.VisionConfig{}, wantErr: true},
		{name: "unknown provider", vision: config.VisionConfig{Provider: "claude"}, wantErr: true},
		{name: "gemini without key", vision: config.VisionConfig{Provider: "gemini"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAnalyzer(ctx, &config.Config{Vision: tt.vision})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewAnalyzer() error = nil, analyzer = %T", a)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewAnalyzer() error = %v", err)
			}
			var got string
			switch a.(type) {
			case *gemini.Client:
				got = "gemini"
			case *openai.Client:
				got = "openai"
			}
			if got != tt.want {
				t.Errorf("NewAnalyzer() = %T, want %s", a, tt.want)
			}
		})
	}
}
