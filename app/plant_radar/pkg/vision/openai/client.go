package openai

import (
	"context"
	"fmt"
	"time"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/imageutil"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/vision"
)

// Client 基于 eino 的 OpenAI 兼容视觉模型客户端
type Client struct {
	model     string
	chatModel model.ChatModel
}

// Ensure Client implements vision.Analyzer
var _ vision.Analyzer = (*Client)(nil)

// NewClient 创建客户端，baseURL 为空时使用官方地址
func NewClient(ctx context.Context, baseURL, apiKey, modelName string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is missing")
	}
	cm, err := einoopenai.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &Client{model: modelName, chatModel: cm}, nil
}

// NewClientWithModel 使用已有的 ChatModel，便于替换实现
func NewClientWithModel(modelName string, cm model.ChatModel) *Client {
	return &Client{model: modelName, chatModel: cm}
}

// Analyze 发送一条包含文本与图片的用户消息
func (c *Client) Analyze(ctx context.Context, req *vision.Request) (*vision.Response, error) {
	messages := []*schema.Message{
		{
			Role: schema.User,
			MultiContent: []schema.ChatMessagePart{
				{Type: schema.ChatMessagePartTypeText, Text: req.Prompt},
				{
					Type: schema.ChatMessagePartTypeImageURL,
					ImageURL: &schema.ChatMessageImageURL{
						URL:    imageutil.DataURL(req.MIME, req.Image),
						Detail: schema.ImageURLDetailHigh,
					},
				},
			},
		},
	}

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("openai: empty response")
	}
	return &vision.Response{
		Text:     resp.Content,
		Provider: "openai",
		Model:    c.model,
	}, nil
}
