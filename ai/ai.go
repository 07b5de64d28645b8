package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/negobench/negobench/core"
)

// SamplingConfig holds per-model generation settings. It is resolved once
// at generator construction, never renegotiated mid-match.
type SamplingConfig struct {
	Temperature float32
	MaxTokens   int
}

// DefaultSamplingConfig returns the standard negotiation settings.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

// Completion is the raw outcome of one generation call. OutputTokens is
// taken from the provider's usage metadata; zero when usage is missing.
type Completion struct {
	Text         string
	OutputTokens int
}

// Generator is the single capability the rest of the system needs from a
// model provider: produce a reply to a transcript under a system prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, transcript []core.Message, cfg SamplingConfig) (Completion, error)
}

// chatGenerator drives any chat-completions compatible backend through the
// OpenAI client. The backend is chosen once, from the model identifier.
type chatGenerator struct {
	client *openai.Client
	model  string
}

// NewGenerator builds a Generator for the given model identifier.
// Identifiers prefixed "openrouter/" or "groq/" route to those gateways
// via a base-URL override; everything else goes to OpenAI directly.
func NewGenerator(model string) Generator {
	switch {
	case strings.HasPrefix(model, "openrouter/"):
		cfg := openai.DefaultConfig(os.Getenv("OPENROUTER_API_KEY"))
		cfg.BaseURL = "https://openrouter.ai/api/v1"
		return &chatGenerator{
			client: openai.NewClientWithConfig(cfg),
			model:  strings.TrimPrefix(model, "openrouter/"),
		}
	case strings.HasPrefix(model, "groq/"):
		cfg := openai.DefaultConfig(os.Getenv("GROQ_API_KEY"))
		cfg.BaseURL = "https://api.groq.com/openai/v1"
		return &chatGenerator{
			client: openai.NewClientWithConfig(cfg),
			model:  strings.TrimPrefix(model, "groq/"),
		}
	default:
		return &chatGenerator{
			client: openai.NewClient(os.Getenv("OPENAI_API_KEY")),
			model:  model,
		}
	}
}

func (g *chatGenerator) Generate(ctx context.Context, systemPrompt string, transcript []core.Message, cfg SamplingConfig) (Completion, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(transcript)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range transcript {
		role := openai.ChatMessageRoleUser
		if m.Speaker == core.SpeakerSelf {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Text,
		})
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return Completion{}, fmt.Errorf("chat completion for %s: %w", g.model, err)
	}
	if len(resp.Choices) == 0 {
		return Completion{}, fmt.Errorf("chat completion for %s: empty choices", g.model)
	}

	tokens := resp.Usage.CompletionTokens
	if resp.Usage.CompletionTokensDetails != nil {
		tokens += resp.Usage.CompletionTokensDetails.ReasoningTokens
	}

	return Completion{
		Text:         resp.Choices[0].Message.Content,
		OutputTokens: tokens,
	}, nil
}
