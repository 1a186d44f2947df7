package conf

type Bootstrap struct {
	Server *Server
	Radar  *Radar
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Radar struct {
	Vision      *Vision      `json:"vision"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type Vision struct {
	Provider      string  `json:"provider"`
	Gemini        *Gemini `json:"gemini"`
	Openai        *OpenAI `json:"openai"`
	Timeout       int32   `json:"timeout"`
	MaxImageBytes int64   `json:"max_image_bytes"`
}

type Gemini struct {
	ApiKey string `json:"api_key"`
	Model  string `json:"model"`
}

type OpenAI struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
