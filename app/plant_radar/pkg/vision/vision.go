package vision

import "context"

// Analyzer 定义通用的视觉模型接口
type Analyzer interface {
	Analyze(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用分析请求
type Request struct {
	Prompt string
	Image  []byte
	MIME   string // image/jpeg, image/png ...
}

// Response 通用分析响应
type Response struct {
	Text     string // 模型返回的原始文本
	Provider string
	Model    string
}
