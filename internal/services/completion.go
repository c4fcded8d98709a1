package services

import "context"

// SystemPrompt is sent ahead of every user message.
const SystemPrompt = "You are Nova, a friendly AI assistant built by the user. Respond accordingly."

type ResultKind int

const (
	ResultOK ResultKind = iota
	// ResultNoContent is a 2xx upstream reply without a first choice or with empty content.
	ResultNoContent
	// ResultUpstreamError is a non-2xx upstream reply. Status holds the upstream status.
	ResultUpstreamError
	// ResultTransportError covers network failures and undecodable payloads.
	ResultTransportError
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultNoContent:
		return "no_content"
	case ResultUpstreamError:
		return "upstream_error"
	case ResultTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single upstream call.
type Result struct {
	Kind   ResultKind
	Text   string
	Status int
	Err    error
}

// CompletionRequest is a single stateless exchange. An empty Model selects the completer's default.
type CompletionRequest struct {
	Model   string
	Message string
}

// Completer forwards one message to an upstream chat-completion API.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) Result
}

func okOrEmpty(text string) Result {
	if text == "" {
		return Result{Kind: ResultNoContent}
	}
	return Result{Kind: ResultOK, Text: text}
}
