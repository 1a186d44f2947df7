package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/vision"
)

// Client Gemini 视觉模型客户端
type Client struct {
	model  string
	client *genai.Client
}

// Ensure Client implements vision.Analyzer
var _ vision.Analyzer = (*Client)(nil)

// NewClient 创建 Gemini 客户端，连接在 Close 之前复用
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is missing")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{model: strings.TrimSpace(model), client: cl}, nil
}

// Analyze 把提示词与图片一并发送给模型，返回首个候选的文本
func (c *Client) Analyze(ctx context.Context, req *vision.Request) (*vision.Response, error) {
	m := c.client.GenerativeModel(c.model)
	resp, err := m.GenerateContent(ctx,
		genai.Text(req.Prompt),
		genai.Blob{MIMEType: req.MIME, Data: req.Image},
	)
	if err != nil {
		return nil, err
	}

	return &vision.Response{
		Text:     firstText(resp),
		Provider: "gemini",
		Model:    c.model,
	}, nil
}

// Close 关闭底层连接
func (c *Client) Close() error {
	return c.client.Close()
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
