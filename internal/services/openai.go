package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"
)

const chatCompletionsPath = "/chat/completions"

// OpenAIService calls an OpenAI-compatible /chat/completions endpoint.
// Requests go out as-is: model names are never checked locally, upstream decides.
type OpenAIService struct {
	http         *resty.Client
	defaultModel string
}

// NewOpenAIService builds a client with no request timeout; baseURL may be empty for api.openai.com.
func NewOpenAIService(apiKey, baseURL, defaultModel string) *OpenAIService {
	if baseURL == "" {
		baseURL = openai.DefaultConfig(apiKey).BaseURL
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &OpenAIService{
		http:         c,
		defaultModel: defaultModel,
	}
}

func (s *OpenAIService) Complete(ctx context.Context, req CompletionRequest) Result {
	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: req.Message},
			},
		}).
		Post(chatCompletionsPath)
	if err != nil {
		return Result{Kind: ResultTransportError, Err: fmt.Errorf("upstream request failed: %w", err)}
	}

	if !resp.IsSuccess() {
		return Result{Kind: ResultUpstreamError, Status: resp.StatusCode(), Err: upstreamError(resp.StatusCode(), resp.Body())}
	}

	var body openai.ChatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return Result{Kind: ResultTransportError, Err: fmt.Errorf("failed to decode upstream reply: %w", err)}
	}

	if len(body.Choices) == 0 {
		return Result{Kind: ResultNoContent}
	}
	return okOrEmpty(body.Choices[0].Message.Content)
}

// upstreamError describes a non-2xx reply, preferring the structured {"error": {...}} body.
func upstreamError(status int, body []byte) error {
	var errResp openai.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
		errResp.Error.HTTPStatusCode = status
		return fmt.Errorf("upstream status %d: %w", status, errResp.Error)
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return fmt.Errorf("upstream status %d: %s", status, text)
}
