package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantumspace/research-platform/pkg/clients"
	"github.com/quantumspace/research-platform/pkg/config"
	"github.com/tmc/langchaingo/llms"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	appName = "quantumspace"
	userID  = "user" // Single user for now

	// sessionID is fixed: every Ask call builds a fresh conversation
	// context under this identifier, so no history carries across calls.
	sessionID = "quantumspace-chat"
)

// Service relays a single user message to the configured LLM provider
// under the fixed assistant persona and returns the reply verbatim.
type Service struct {
	provider string

	// Exactly one of these is set, depending on the provider.
	llm   llms.Model  // openai / anthropic via langchaingo
	agent agent.Agent // gemini via ADK
}

func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	svc := &Service{provider: cfg.LLMProvider}

	switch cfg.LLMProvider {
	case "openai":
		llm, err := clients.OpenAI(cfg.OpenAIApiKey, cfg.LLMModel)
		if err != nil {
			return nil, fmt.Errorf("failed to init LLM: %w", err)
		}
		svc.llm = llm

	case "anthropic":
		llm, err := clients.Anthropic(cfg.AnthropicApiKey, cfg.LLMModel)
		if err != nil {
			return nil, fmt.Errorf("failed to init LLM: %w", err)
		}
		svc.llm = llm

	case "gemini", "googleai":
		modelClient, err := gemini.NewModel(ctx, cfg.LLMModel, &genai.ClientConfig{
			APIKey: cfg.GoogleApiKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create model: %w", err)
		}

		assistant, err := llmagent.New(llmagent.Config{
			Name:        "quantumspace_assistant",
			Model:       modelClient,
			Description: "An assistant for space research, quantum theory, and AI programming questions.",
			Instruction: systemPrompt,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create agent: %w", err)
		}
		svc.agent = assistant

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return svc, nil
}

// Ask sends message as the sole turn of a fresh conversation and returns
// the model's textual reply. Failures propagate unwrapped beyond a single
// contextual wrap; nothing is retried.
func (s *Service) Ask(ctx context.Context, message string) (string, error) {
	if s.agent != nil {
		return s.askAgent(ctx, message)
	}
	return s.askModel(ctx, message)
}

func (s *Service) askModel(ctx context.Context, message string) (string, error) {
	prompts := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, message),
	}

	resp, err := s.llm.GenerateContent(ctx, prompts)
	if err != nil {
		return "", fmt.Errorf("llm generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}

	return resp.Choices[0].Content, nil
}

func (s *Service) askAgent(ctx context.Context, message string) (string, error) {
	// A fresh in-memory session service per call keeps each request
	// logically independent despite the fixed session id.
	sessionSvc := session.InMemoryService()
	if _, err := sessionSvc.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
	}); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          s.agent,
		SessionService: sessionSvc,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create runner: %w", err)
	}

	userContent := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: message},
		},
	}

	var reply strings.Builder
	for event, err := range r.Run(ctx, userID, sessionID, userContent, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent run failed: %w", err)
		}
		if event.LLMResponse.Content == nil {
			continue
		}
		for _, part := range event.LLMResponse.Content.Parts {
			if part.Text != "" {
				reply.WriteString(part.Text)
			}
		}
	}

	return reply.String(), nil
}
