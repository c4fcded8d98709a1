package models

// Model options offered by the client. The proxy receives none of them today.
const (
	ModelGPT4   = "GPT-4"
	ModelGPT35  = "GPT-3.5"
	ModelCustom = "Custom"
)

// ModelOptions lists the selectable models in display order.
var ModelOptions = []string{ModelGPT4, ModelGPT35, ModelCustom}

const (
	MinTemperature     = 0.0
	MaxTemperature     = 1.0
	TemperatureStep    = 0.1
	DefaultTemperature = 0.5

	MinMaxTokens     = 10
	MaxMaxTokens     = 400
	MaxTokensStep    = 10
	DefaultMaxTokens = 100
)

// ChatTurn is one prompt/response pair recorded in history.
type ChatTurn struct {
	Prompt   string `json:"prompt" toml:"prompt"`
	Response string `json:"response" toml:"response"`
}

// RequestParameters is the form state captured by the client.
type RequestParameters struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

func DefaultRequestParameters() RequestParameters {
	return RequestParameters{
		Model:       ModelGPT4,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// ProxyRequest is the payload sent to POST /api/ai-response.
type ProxyRequest struct {
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
}

// ProxyResponse is the reply from POST /api/ai-response.
type ProxyResponse struct {
	Reply string `json:"reply"`
}
