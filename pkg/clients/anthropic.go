package clients

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/anthropic"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-3-5-haiku-20241022"

// Anthropic builds a langchaingo client for the Anthropic API.
func Anthropic(apiKey, model string) (*anthropic.LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is not set")
	}
	if model == "" {
		model = DefaultAnthropicModel
	}

	llm, err := anthropic.New(anthropic.WithToken(apiKey), anthropic.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic client: %w", err)
	}

	return llm, nil
}
