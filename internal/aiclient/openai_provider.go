package aiclient

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// openAIChatCompleter is the slice of the OpenAI client the provider needs.
// Tests substitute a mock.
type openAIChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider generates text through the OpenAI chat completions API.
type OpenAIProvider struct {
	client openAIChatCompleter
	model  string
}

// NewOpenAIProvider builds a provider for the given model. An empty apiKey
// falls back to the OPENAI_API_KEY environment variable.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key not configured")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}, nil
}

func (p *OpenAIProvider) Name() string      { return "openai" }
func (p *OpenAIProvider) ModelName() string { return p.model }

func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
