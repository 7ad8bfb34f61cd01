package summarizer

import (
	"context"
	"errors"

	"newsbrief/config"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAICompatible talks to any OpenAI-style chat completions endpoint.
// Groq is the default deployment; plain OpenAI uses an empty baseURL.
type OpenAICompatible struct {
	client   *openai.Client
	provider string
	model    string
}

// NewOpenAICompatible creates a client for provider. The SDK's own retries are disabled.
func NewOpenAICompatible(provider, apiKey, model, baseURL string) *OpenAICompatible {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAICompatible{client: &client, provider: provider, model: model}
}

func (c *OpenAICompatible) ModelName() string { return c.model }

func (c *OpenAICompatible) Summarize(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(req)),
		},
		Temperature: openai.Float(config.SummaryTemperature),
		TopP:        openai.Float(config.SummaryTopP),
		MaxTokens:   openai.Int(config.SummaryMaxTokens),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", newError(c.provider, apiErr.StatusCode, err)
		}
		return "", newError(c.provider, 0, err)
	}

	if len(resp.Choices) == 0 {
		return "", &SummarizationError{Kind: KindEmpty, Provider: c.provider, Err: errors.New("no choices in response")}
	}
	return finish(c.provider, resp.Choices[0].Message.Content)
}
