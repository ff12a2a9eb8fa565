package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethanbaker/calldash/pkg/utils"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// DefaultInstructions are used when no instructions file is configured
const DefaultInstructions = `You write short scripts for an automated phone agent.
Given a description of the purpose of a call, reply with only the words the agent should say.
Keep it under 120 words, polite, and use bracketed placeholders such as [Agent Name] and [Company Name] for details you do not know.`

// OpenAIGenerator writes scripts with an OpenAI chat model
type OpenAIGenerator struct {
	client       openai.Client
	model        string
	instructions string
}

// NewOpenAIGenerator creates a generator from config. OPENAI_API_KEY is required;
// OPENAI_MODEL and PROMPT_INSTRUCTIONS_PATH are optional.
func NewOpenAIGenerator(cfg *utils.Config) (*OpenAIGenerator, error) {
	apiKey := cfg.Get("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set in environment")
	}

	return &OpenAIGenerator{
		client:       openai.NewClient(option.WithAPIKey(apiKey)),
		model:        cfg.GetWithDefault("OPENAI_MODEL", openai.ChatModelGPT4oMini),
		instructions: utils.LoadPromptWithFallback(cfg.Get("PROMPT_INSTRUCTIONS_PATH"), DefaultInstructions),
	}, nil
}

// Generate asks the model for a script matching input
func (g *OpenAIGenerator) Generate(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("input cannot be empty")
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(g.instructions),
			openai.UserMessage(input),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate prompt: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	script := strings.TrimSpace(completion.Choices[0].Message.Content)
	if script == "" {
		return "", fmt.Errorf("model returned an empty script")
	}

	return script, nil
}

// NewFromConfig returns the OpenAI generator when an API key is configured and the
// keyword template generator otherwise
func NewFromConfig(cfg *utils.Config) Generator {
	if cfg.Get("OPENAI_API_KEY") == "" {
		return NewTemplateGenerator()
	}

	generator, err := NewOpenAIGenerator(cfg)
	if err != nil {
		return NewTemplateGenerator()
	}
	return generator
}
