package ai

import "context"

// Options tunes a single generation request.
// Temperature < 0 means the provider default; MaxTokens <= 0 means no cap.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// TextGenerator generates text from a system prompt and user prompt.
// All LLM providers (OpenAI-compatible, Ollama) implement this interface.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)
}
