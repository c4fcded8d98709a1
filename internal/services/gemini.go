package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiService answers through the Gemini API with the same result contract as OpenAIService.
type GeminiService struct {
	client       *genai.Client
	defaultModel string
}

func NewGeminiService(ctx context.Context, apiKey, defaultModel string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:       client,
		defaultModel: defaultModel,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) Complete(ctx context.Context, req CompletionRequest) Result {
	name := req.Model
	if name == "" {
		name = s.defaultModel
	}

	model := s.client.GenerativeModel(name)
	model.SystemInstruction = genai.NewUserContent(genai.Text(SystemPrompt))

	resp, err := model.GenerateContent(ctx, genai.Text(req.Message))
	if err != nil {
		return classifyGeminiError(err)
	}

	return okOrEmpty(extractText(resp))
}

func classifyGeminiError(err error) Result {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return Result{Kind: ResultNoContent, Err: err}
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code != 0 {
		return Result{Kind: ResultUpstreamError, Status: gerr.Code, Err: err}
	}
	return Result{Kind: ResultTransportError, Err: err}
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	// Only the first candidate counts, as with choices[0] on the OpenAI side.
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}
