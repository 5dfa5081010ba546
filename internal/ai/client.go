// Package ai talks to hosted language models: it answers questions about the
// record set and transcribes spoken expense notes.
package ai

import (
	"context"
	"io"
	"time"
)

// Provider names accepted by the ai.provider setting.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Default models per provider.
const (
	DefaultOpenAIModel              = "gpt-4o-mini"
	DefaultOpenAITranscriptionModel = "gpt-4o-mini-transcribe"
	DefaultOpenAIBaseURL            = "https://api.openai.com/v1"
	DefaultGeminiModel              = "gemini-1.5-flash"
	DefaultTimeout                  = 30 * time.Second
)

// Prompt is a system and user message pair sent to a chat model.
type Prompt struct {
	System string
	User   string
}

// QueryService answers a free-text question. Errors are returned, never retried.
type QueryService interface {
	Analyze(ctx context.Context, prompt Prompt) (string, error)
}

// Transcriber turns an audio recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Client is a provider offering both services.
type Client interface {
	QueryService
	Transcriber
	Name() string
}
