package clients

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI builds a langchaingo client for the OpenAI API. The key is passed
// in explicitly rather than read from the environment so the caller owns
// credential lifecycle.
func OpenAI(apiKey, model string) (*openai.LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is not set")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return llm, nil
}
